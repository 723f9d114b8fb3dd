package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Contractor is hypothetical augmentation that exists only inside a scenario.
// It adds FTE hours to TeamID during [StartWeek, StartWeek+Weeks).
type Contractor struct {
	ID         string  `json:"id,omitempty" yaml:"-"`
	ScenarioID string  `json:"scenario_id,omitempty" yaml:"-"`
	TeamID     string  `json:"team_id" yaml:"team_id"`
	Role       Role    `json:"role" yaml:"role"`
	FTE        float64 `json:"fte" yaml:"fte"`
	Weeks      int     `json:"weeks" yaml:"weeks"`
	StartWeek  int     `json:"start_week" yaml:"start_week"`
}

// ActiveIn reports whether the contractor is engaged during week.
func (c *Contractor) ActiveIn(week int) bool {
	return week >= c.StartWeek && week < c.StartWeek+c.Weeks
}

func (c *Contractor) Validate() error {
	if c.TeamID == "" {
		return fmt.Errorf("%w: contractor team_id is required", ErrValidation)
	}
	if !c.Role.Valid() {
		return fmt.Errorf("%w: invalid contractor role %q", ErrValidation, c.Role)
	}
	if c.FTE < 0 {
		return fmt.Errorf("%w: contractor fte must be >= 0", ErrValidation)
	}
	if c.Weeks < 0 || c.StartWeek < 0 {
		return fmt.Errorf("%w: contractor weeks and start_week must be >= 0", ErrValidation)
	}
	return nil
}

// PriorityOverride re-ranks a project inside one scenario.
type PriorityOverride struct {
	ScenarioID string `json:"scenario_id,omitempty" yaml:"-"`
	ProjectID  string `json:"project_id" yaml:"project_id"`
	Priority   int    `json:"priority" yaml:"priority"`
}

// Scenario is a named, non-destructive overlay on the baseline portfolio.
type Scenario struct {
	ID                string             `json:"id" yaml:"-"`
	OrgID             string             `json:"org_id" yaml:"-"`
	Name              string             `json:"name" yaml:"name"`
	Description       string             `json:"description" yaml:"description"`
	Contractors       []Contractor       `json:"contractors" yaml:"contractors"`
	PriorityOverrides []PriorityOverride `json:"priority_overrides" yaml:"priority_overrides"`
	CreatedAt         time.Time          `json:"created_at" yaml:"-"`
	UpdatedAt         time.Time          `json:"updated_at" yaml:"-"`

	// Display cache of the last allocation run; never authoritative.
	Snapshot   json.RawMessage `json:"snapshot,omitempty" yaml:"-"`
	SnapshotAt *time.Time      `json:"snapshot_at,omitempty" yaml:"-"`
}

// OverrideMap returns project ID -> substitute priority.
func (s *Scenario) OverrideMap() map[string]int {
	m := make(map[string]int, len(s.PriorityOverrides))
	for _, o := range s.PriorityOverrides {
		m[o.ProjectID] = o.Priority
	}
	return m
}

func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: scenario name is required", ErrValidation)
	}
	for i := range s.Contractors {
		if err := s.Contractors[i].Validate(); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(s.PriorityOverrides))
	for _, o := range s.PriorityOverrides {
		if o.ProjectID == "" {
			return fmt.Errorf("%w: override project_id is required", ErrValidation)
		}
		if seen[o.ProjectID] {
			return fmt.Errorf("%w: duplicate override for project %s", ErrValidation, o.ProjectID)
		}
		seen[o.ProjectID] = true
	}
	return nil
}
