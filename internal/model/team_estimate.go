package model

import (
	"fmt"
	"time"
)

// Phase is one of the five fixed delivery phases, scheduled in declaration order.
type Phase string

const (
	PhaseDesign      Phase = "design"
	PhaseDevelopment Phase = "development"
	PhaseTesting     Phase = "testing"
	PhaseDeployment  Phase = "deployment"
	PhasePostDeploy  Phase = "post_deploy"
)

// Phases lists the phases in scheduling order.
var Phases = []Phase{PhaseDesign, PhaseDevelopment, PhaseTesting, PhaseDeployment, PhasePostDeploy}

// Capitalizable reports whether hours in this phase are booked as capex.
// Design and development are capex; testing, deployment and post-deploy are opex.
func (p Phase) Capitalizable() bool {
	return p == PhaseDesign || p == PhaseDevelopment
}

// TeamEstimate is one team's phase-hour estimate for a project.
type TeamEstimate struct {
	ID          string    `json:"id,omitempty" yaml:"-"`
	ProjectID   string    `json:"project_id" yaml:"-"`
	TeamID      string    `json:"team_id" yaml:"team_id"`
	Design      float64   `json:"design" yaml:"design"`
	Development float64   `json:"development" yaml:"development"`
	Testing     float64   `json:"testing" yaml:"testing"`
	Deployment  float64   `json:"deployment" yaml:"deployment"`
	PostDeploy  float64   `json:"post_deploy" yaml:"post_deploy"`
	SortOrder   int       `json:"sort_order" yaml:"-"`
	CreatedAt   time.Time `json:"created_at,omitempty" yaml:"-"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" yaml:"-"`
}

// Hours returns the estimate for phase.
func (e *TeamEstimate) Hours(phase Phase) float64 {
	switch phase {
	case PhaseDesign:
		return e.Design
	case PhaseDevelopment:
		return e.Development
	case PhaseTesting:
		return e.Testing
	case PhaseDeployment:
		return e.Deployment
	case PhasePostDeploy:
		return e.PostDeploy
	default:
		return 0
	}
}

// Total sums the positive phase hours.
func (e *TeamEstimate) Total() float64 {
	total := 0.0
	for _, phase := range Phases {
		if h := e.Hours(phase); h > 0 {
			total += h
		}
	}
	return total
}

// Validate checks that the estimate names a team and has no negative hours.
func (e *TeamEstimate) Validate() error {
	if e.TeamID == "" {
		return fmt.Errorf("%w: estimate team_id is required", ErrValidation)
	}
	for _, phase := range Phases {
		if e.Hours(phase) < 0 {
			return fmt.Errorf("%w: %s hours must be >= 0", ErrValidation, phase)
		}
	}
	return nil
}
