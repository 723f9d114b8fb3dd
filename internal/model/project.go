package model

import (
	"fmt"
	"time"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "not_started"
	StatusInPlanning ProjectStatus = "in_planning"
	StatusActive     ProjectStatus = "active"
	StatusOnHold     ProjectStatus = "on_hold"
	StatusComplete   ProjectStatus = "complete"
	StatusCancelled  ProjectStatus = "cancelled"
)

var validStatuses = map[ProjectStatus]bool{
	StatusNotStarted: true,
	StatusInPlanning: true,
	StatusActive:     true,
	StatusOnHold:     true,
	StatusComplete:   true,
	StatusCancelled:  true,
}

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool { return validStatuses[s] }

// Closed reports whether the project no longer places demand on capacity.
func (s ProjectStatus) Closed() bool {
	return s == StatusComplete || s == StatusCancelled
}

// Project is a portfolio item ranked by priority.
type Project struct {
	ID        string        `json:"id" yaml:"id"`
	OrgID     string        `json:"org_id" yaml:"-"`
	Name      string        `json:"name" yaml:"name"`
	Priority  int           `json:"priority" yaml:"priority"` // lower = higher precedence
	Status    ProjectStatus `json:"status" yaml:"status"`
	StartWeek int           `json:"start_week" yaml:"start_week"`
	CreatedAt time.Time     `json:"created_at" yaml:"-"`
	UpdatedAt time.Time     `json:"updated_at" yaml:"-"`

	Estimates []TeamEstimate `json:"estimates" yaml:"estimates"`
}

// Validate checks the project invariants, including its estimates.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, p.Status)
	}
	if p.StartWeek < 0 {
		return fmt.Errorf("%w: start_week must be >= 0", ErrValidation)
	}
	seen := make(map[string]bool, len(p.Estimates))
	for i := range p.Estimates {
		e := &p.Estimates[i]
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.TeamID] {
			return fmt.Errorf("%w: duplicate estimate for team %s", ErrValidation, e.TeamID)
		}
		seen[e.TeamID] = true
	}
	return nil
}

// TotalHours sums every phase of every estimate.
func (p *Project) TotalHours() float64 {
	total := 0.0
	for i := range p.Estimates {
		total += p.Estimates[i].Total()
	}
	return total
}
