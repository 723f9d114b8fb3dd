package model

import (
	"fmt"
	"time"
)

// Holiday removes HoursPerFTE hours per FTE from every observing team in Week.
// An empty TeamIDs list means every team observes it.
type Holiday struct {
	ID          string    `json:"id" yaml:"id"`
	OrgID       string    `json:"org_id" yaml:"-"`
	Name        string    `json:"name" yaml:"name"`
	Week        int       `json:"week" yaml:"week"`
	HoursPerFTE float64   `json:"hours_per_fte" yaml:"hours_per_fte"`
	TeamIDs     []string  `json:"team_ids" yaml:"team_ids"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
}

// ObservedBy reports whether teamID observes the holiday.
func (h *Holiday) ObservedBy(teamID string) bool {
	if len(h.TeamIDs) == 0 {
		return true
	}
	for _, id := range h.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

func (h *Holiday) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("%w: holiday name is required", ErrValidation)
	}
	if h.Week < 0 {
		return fmt.Errorf("%w: holiday week must be >= 0", ErrValidation)
	}
	if h.HoursPerFTE < 0 {
		return fmt.Errorf("%w: hours_per_fte must be >= 0", ErrValidation)
	}
	return nil
}

// Resource is a named person on a team.
type Resource struct {
	ID        string    `json:"id" yaml:"id"`
	OrgID     string    `json:"org_id" yaml:"-"`
	TeamID    string    `json:"team_id" yaml:"team_id"`
	Name      string    `json:"name" yaml:"name"`
	Role      Role      `json:"role" yaml:"role"`
	Skills    []string  `json:"skills" yaml:"skills"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
}

func (r *Resource) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: resource name is required", ErrValidation)
	}
	if r.TeamID == "" {
		return fmt.Errorf("%w: resource team_id is required", ErrValidation)
	}
	if !r.Role.Valid() {
		return fmt.Errorf("%w: invalid role %q", ErrValidation, r.Role)
	}
	return nil
}

// PTOEntry is time off for one resource in one week.
type PTOEntry struct {
	ID         string    `json:"id" yaml:"id"`
	ResourceID string    `json:"resource_id" yaml:"resource_id"`
	Week       int       `json:"week" yaml:"week"`
	Hours      float64   `json:"hours" yaml:"hours"`
	Note       string    `json:"note,omitempty" yaml:"note"`
	CreatedAt  time.Time `json:"created_at" yaml:"-"`
}

func (p *PTOEntry) Validate() error {
	if p.ResourceID == "" {
		return fmt.Errorf("%w: pto resource_id is required", ErrValidation)
	}
	if p.Week < 0 {
		return fmt.Errorf("%w: pto week must be >= 0", ErrValidation)
	}
	if p.Hours < 0 {
		return fmt.Errorf("%w: pto hours must be >= 0", ErrValidation)
	}
	return nil
}
