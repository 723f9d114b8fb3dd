package model

import (
	"fmt"
	"time"
)

// Role is a staffing role key used for FTE counts and contractors.
type Role string

const (
	RoleArchitect       Role = "architect"
	RoleDeveloper       Role = "developer"
	RoleQA              Role = "qa"
	RoleDevOps          Role = "devops"
	RoleBusinessAnalyst Role = "business_analyst"
	RoleDBA             Role = "dba"
	RolePM              Role = "pm"
	RoleProductManager  Role = "product_manager"
	RoleUXDesigner      Role = "ux_designer"
)

// Roles lists every role in display order.
var Roles = []Role{
	RoleArchitect, RoleDeveloper, RoleQA, RoleDevOps, RoleBusinessAnalyst,
	RoleDBA, RolePM, RoleProductManager, RoleUXDesigner,
}

// Valid reports whether r is a known role key.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Staffing holds the FTE count per role.
type Staffing struct {
	Architect       float64 `json:"architect" yaml:"architect"`
	Developer       float64 `json:"developer" yaml:"developer"`
	QA              float64 `json:"qa" yaml:"qa"`
	DevOps          float64 `json:"devops" yaml:"devops"`
	BusinessAnalyst float64 `json:"business_analyst" yaml:"business_analyst"`
	DBA             float64 `json:"dba" yaml:"dba"`
	PM              float64 `json:"pm" yaml:"pm"`
	ProductManager  float64 `json:"product_manager" yaml:"product_manager"`
	UXDesigner      float64 `json:"ux_designer" yaml:"ux_designer"`
}

// FTE returns the FTE count for role, 0 for unknown roles.
func (s Staffing) FTE(role Role) float64 {
	switch role {
	case RoleArchitect:
		return s.Architect
	case RoleDeveloper:
		return s.Developer
	case RoleQA:
		return s.QA
	case RoleDevOps:
		return s.DevOps
	case RoleBusinessAnalyst:
		return s.BusinessAnalyst
	case RoleDBA:
		return s.DBA
	case RolePM:
		return s.PM
	case RoleProductManager:
		return s.ProductManager
	case RoleUXDesigner:
		return s.UXDesigner
	default:
		return 0
	}
}

// Total sums FTE across all roles. Negative counts contribute nothing.
func (s Staffing) Total() float64 {
	total := 0.0
	for _, role := range Roles {
		if fte := s.FTE(role); fte > 0 {
			total += fte
		}
	}
	return total
}

// Team is a delivery team whose staffing determines weekly capacity.
type Team struct {
	ID        string    `json:"id" yaml:"id"`
	OrgID     string    `json:"org_id" yaml:"-"`
	Name      string    `json:"name" yaml:"name"`
	Staffing  Staffing  `json:"staffing" yaml:"staffing"`
	KLOHours  float64   `json:"klo_hours" yaml:"klo_hours"` // recurring KLO/TLM hours per week
	AdminPct  float64   `json:"admin_pct" yaml:"admin_pct"` // 0-100
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`

	// Transient: computed on read, not stored
	EffectiveWeeklyHours float64 `json:"effective_weekly_hours" yaml:"-"`
}

// Validate checks the team invariants.
func (t *Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: team name is required", ErrValidation)
	}
	for _, role := range Roles {
		if t.Staffing.FTE(role) < 0 {
			return fmt.Errorf("%w: %s fte must be >= 0", ErrValidation, role)
		}
	}
	if t.KLOHours < 0 {
		return fmt.Errorf("%w: klo_hours must be >= 0", ErrValidation)
	}
	if t.AdminPct < 0 || t.AdminPct > 100 {
		return fmt.Errorf("%w: admin_pct must be between 0 and 100", ErrValidation)
	}
	return nil
}
