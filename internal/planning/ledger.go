package planning

import "github.com/pschlie1/it-capacity-planner-sub001/internal/model"

// ledger tracks one team's week-indexed capacity and the hours already
// committed to higher-priority projects. Both vectors grow on demand up to
// Config.MaxScheduleWeeks.
type ledger struct {
	team        *model.Team
	base        float64
	reductions  map[int]float64 // holiday + PTO hours per week
	contractors []model.Contractor
	hoursPerFTE float64

	capacity []float64
	consumed []float64
}

func newLedger(team *model.Team, cfg Config) *ledger {
	return &ledger{
		team:        team,
		base:        EffectiveWeeklyHours(team, cfg),
		reductions:  make(map[int]float64),
		hoursPerFTE: cfg.HoursPerWeek,
	}
}

func (l *ledger) reduce(week int, hours float64) {
	if week < 0 || hours <= 0 {
		return
	}
	l.reductions[week] += hours
}

// capacityAt is the week's base hours less holidays and PTO (floored at 0),
// plus any contractor hours active that week.
func (l *ledger) capacityAt(week int) float64 {
	c := clampNonNegative(l.base - l.reductions[week])
	for i := range l.contractors {
		if l.contractors[i].ActiveIn(week) {
			c += clampNonNegative(l.contractors[i].FTE) * l.hoursPerFTE
		}
	}
	return c
}

// ensure grows the vectors so that index week is addressable.
func (l *ledger) ensure(week int) {
	for len(l.capacity) <= week {
		l.capacity = append(l.capacity, l.capacityAt(len(l.capacity)))
		l.consumed = append(l.consumed, 0)
	}
}

func (l *ledger) remaining(week int) float64 {
	l.ensure(week)
	return clampNonNegative(l.capacity[week] - l.consumed[week])
}

func (l *ledger) consume(week int, hours float64) {
	l.ensure(week)
	l.consumed[week] += hours
}

// buildLedgers creates one ledger per distinct team ID (first occurrence wins)
// and applies holidays, PTO and contractors. The returned slice preserves the
// input team order.
func buildLedgers(in Input, cfg Config) (map[string]*ledger, []*ledger) {
	byID := make(map[string]*ledger, len(in.Teams))
	ordered := make([]*ledger, 0, len(in.Teams))
	for i := range in.Teams {
		team := &in.Teams[i]
		if _, dup := byID[team.ID]; dup {
			continue
		}
		l := newLedger(team, cfg)
		byID[team.ID] = l
		ordered = append(ordered, l)
	}

	for i := range in.Holidays {
		h := &in.Holidays[i]
		for _, l := range ordered {
			if h.ObservedBy(l.team.ID) {
				l.reduce(h.Week, clampNonNegative(h.HoursPerFTE)*l.team.Staffing.Total())
			}
		}
	}

	resourceTeam := make(map[string]string, len(in.Resources))
	for _, r := range in.Resources {
		resourceTeam[r.ID] = r.TeamID
	}
	for _, pto := range in.PTO {
		teamID, ok := resourceTeam[pto.ResourceID]
		if !ok {
			continue
		}
		if l, ok := byID[teamID]; ok {
			l.reduce(pto.Week, clampNonNegative(pto.Hours))
		}
	}

	for _, c := range in.Contractors {
		if !c.Role.Valid() {
			continue
		}
		if l, ok := byID[c.TeamID]; ok {
			l.contractors = append(l.contractors, c)
		}
	}

	for _, l := range ordered {
		l.ensure(cfg.HorizonWeeks - 1)
	}
	return byID, ordered
}
