package planning

import (
	"math"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// EffectiveWeeklyHours converts a team's staffing into the hours available for
// project work in a normal week.
//
// base = total FTE * hours per week, minus the flat KLO/TLM tax, minus AdminPct
// percent of what is left. The result is never negative. Holidays and PTO are
// applied per week by the engine, not here.
func EffectiveWeeklyHours(team *model.Team, cfg Config) float64 {
	hoursPerWeek := cfg.HoursPerWeek
	if hoursPerWeek <= 0 {
		hoursPerWeek = DefaultHoursPerWeek
	}
	base := team.Staffing.Total() * hoursPerWeek

	remaining := base - clampNonNegative(team.KLOHours)
	if remaining <= 0 {
		return 0
	}

	adminPct := team.AdminPct
	switch {
	case adminPct < 0:
		adminPct = 0
	case adminPct > 100:
		adminPct = 100
	}
	return clampNonNegative(remaining * (1 - adminPct/100))
}

func clampNonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
