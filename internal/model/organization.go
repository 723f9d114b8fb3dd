package model

import (
	"fmt"
	"time"
)

// OrgSettings holds organization-level overrides of the planning defaults.
// Nil fields fall back to the server configuration.
type OrgSettings struct {
	OrgID        string    `json:"org_id"`
	BlendedRate  *float64  `json:"blended_rate,omitempty"`
	HoursPerWeek *float64  `json:"hours_per_week,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *OrgSettings) Validate() error {
	if s.BlendedRate != nil && *s.BlendedRate < 0 {
		return fmt.Errorf("%w: blended_rate must be >= 0", ErrValidation)
	}
	if s.HoursPerWeek != nil && *s.HoursPerWeek <= 0 {
		return fmt.Errorf("%w: hours_per_week must be > 0", ErrValidation)
	}
	return nil
}
