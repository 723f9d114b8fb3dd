package planning

// TeamSummary is the reporting view of one team's load within the horizon.
type TeamSummary struct {
	TeamID           string  `json:"team_id"`
	TeamName         string  `json:"team_name"`
	WeeklyHours      float64 `json:"weekly_hours"`
	CapacityHours    float64 `json:"capacity_hours"`
	AllocatedHours   float64 `json:"allocated_hours"`
	AvailableHours   float64 `json:"available_hours"`
	UtilizationPct   float64 `json:"utilization_pct"`
	FullyBookedWeeks int     `json:"fully_booked_weeks"`
	PeakWeek         int     `json:"peak_week"`
}

// Summarize derives utilization and available hours per team by summing the
// engine's weekly vectors over the horizon.
func Summarize(res *Result) []TeamSummary {
	out := make([]TeamSummary, 0, len(res.Teams))
	for _, t := range res.Teams {
		s := TeamSummary{TeamID: t.TeamID, TeamName: t.TeamName, WeeklyHours: t.WeeklyHours, PeakWeek: -1}
		peak := 0.0
		weeks := min(res.HorizonWeeks, len(t.Capacity), len(t.Consumed))
		for w := 0; w < weeks; w++ {
			capacity, consumed := t.Capacity[w], t.Consumed[w]
			s.CapacityHours += capacity
			s.AllocatedHours += consumed
			if capacity > 0 && consumed >= capacity-epsilon {
				s.FullyBookedWeeks++
			}
			if consumed > peak+epsilon {
				peak = consumed
				s.PeakWeek = w
			}
		}
		s.AvailableHours = clampNonNegative(s.CapacityHours - s.AllocatedHours)
		if s.CapacityHours > 0 {
			s.UtilizationPct = s.AllocatedHours / s.CapacityHours * 100
		}
		out = append(out, s)
	}
	return out
}
