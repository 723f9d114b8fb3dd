package planning

import (
	"cmp"
	"slices"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// epsilon absorbs float residue when hours are split across weeks.
const epsilon = 1e-9

// Input is the in-memory snapshot the engine schedules. The engine reads it
// and never mutates it.
type Input struct {
	Teams     []model.Team     `json:"teams"`
	Projects  []model.Project  `json:"projects"`
	Holidays  []model.Holiday  `json:"holidays"`
	Resources []model.Resource `json:"resources"`
	PTO       []model.PTOEntry `json:"pto"`

	// Scenario overlay; empty for a baseline run.
	Contractors       []model.Contractor `json:"contractors"`
	PriorityOverrides map[string]int     `json:"priority_overrides"`
}

// PhaseAllocation is one phase of one team's work on a project.
// WeeklyHours[i] holds the hours placed in week StartWeek+i.
type PhaseAllocation struct {
	Phase       model.Phase `json:"phase"`
	Hours       float64     `json:"hours"`
	StartWeek   int         `json:"start_week"`
	EndWeek     int         `json:"end_week"`
	WeeklyHours []float64   `json:"weekly_hours"`
}

// HoursInWeek returns the hours placed in an absolute week.
func (p *PhaseAllocation) HoursInWeek(week int) float64 {
	i := week - p.StartWeek
	if i < 0 || i >= len(p.WeeklyHours) {
		return 0
	}
	return p.WeeklyHours[i]
}

func (p *PhaseAllocation) place(week int, hours float64) {
	if len(p.WeeklyHours) == 0 {
		p.StartWeek = week
	}
	for p.StartWeek+len(p.WeeklyHours) <= week {
		p.WeeklyHours = append(p.WeeklyHours, 0)
	}
	p.WeeklyHours[week-p.StartWeek] += hours
	p.EndWeek = week
}

// TeamAllocation is a team's sequence of phases on a project.
type TeamAllocation struct {
	TeamID           string            `json:"team_id"`
	TeamName         string            `json:"team_name"`
	StartWeek        int               `json:"start_week"`
	EndWeek          int               `json:"end_week"`
	Hours            float64           `json:"hours"`
	UnscheduledHours float64           `json:"unscheduled_hours"`
	Phases           []PhaseAllocation `json:"phases"`
}

// Allocation is the engine's verdict for one project.
type Allocation struct {
	ProjectID        string              `json:"project_id"`
	ProjectName      string              `json:"project_name"`
	Priority         int                 `json:"priority"`
	StoredPriority   int                 `json:"stored_priority"`
	Status           model.ProjectStatus `json:"status"`
	Feasible         bool                `json:"feasible"`
	StartWeek        int                 `json:"start_week"`
	EndWeek          int                 `json:"end_week"`
	Hours            float64             `json:"hours"`
	UnscheduledHours float64             `json:"unscheduled_hours"`
	Teams            []TeamAllocation    `json:"teams"`
}

// TeamLoad exposes a team's capacity and committed hours per week.
type TeamLoad struct {
	TeamID      string    `json:"team_id"`
	TeamName    string    `json:"team_name"`
	WeeklyHours float64   `json:"weekly_hours"`
	Capacity    []float64 `json:"capacity"`
	Consumed    []float64 `json:"consumed"`
}

// Result is the output of one engine run.
type Result struct {
	HorizonWeeks int          `json:"horizon_weeks"`
	Allocations  []Allocation `json:"allocations"`
	Teams        []TeamLoad   `json:"teams"`
	// Excluded lists complete and cancelled projects, which place no demand.
	Excluded []string `json:"excluded"`
	// RedLineIndex is the position in Allocations of the first infeasible
	// project, or -1 when everything fits.
	RedLineIndex int `json:"red_line_index"`
}

// Allocation returns the allocation for projectID.
func (r *Result) Allocation(projectID string) (*Allocation, bool) {
	for i := range r.Allocations {
		if r.Allocations[i].ProjectID == projectID {
			return &r.Allocations[i], true
		}
	}
	return nil, false
}

// Infeasible returns the projects beyond the red line.
func (r *Result) Infeasible() []Allocation {
	var out []Allocation
	for _, a := range r.Allocations {
		if !a.Feasible {
			out = append(out, a)
		}
	}
	return out
}

type rankedProject struct {
	project  *model.Project
	priority int
}

// rankProjects drops closed projects and orders the rest by effective
// priority. The sort is stable so ties keep input order.
func rankProjects(projects []model.Project, overrides map[string]int) ([]rankedProject, []string) {
	ranked := make([]rankedProject, 0, len(projects))
	excluded := []string{}
	for i := range projects {
		p := &projects[i]
		if p.Status.Closed() {
			excluded = append(excluded, p.ID)
			continue
		}
		priority := p.Priority
		if o, ok := overrides[p.ID]; ok {
			priority = o
		}
		ranked = append(ranked, rankedProject{project: p, priority: priority})
	}
	slices.SortStableFunc(ranked, func(a, b rankedProject) int {
		return cmp.Compare(a.priority, b.priority)
	})
	return ranked, excluded
}

// Run schedules every open project against team capacity in priority order.
func Run(in Input, cfg Config) *Result {
	cfg = cfg.WithDefaults()

	ledgers, ordered := buildLedgers(in, cfg)
	ranked, excluded := rankProjects(in.Projects, in.PriorityOverrides)

	res := &Result{
		HorizonWeeks: cfg.HorizonWeeks,
		Allocations:  make([]Allocation, 0, len(ranked)),
		Excluded:     excluded,
		RedLineIndex: -1,
	}
	for _, rp := range ranked {
		alloc := scheduleProject(rp, ledgers, cfg)
		if !alloc.Feasible && res.RedLineIndex < 0 {
			res.RedLineIndex = len(res.Allocations)
		}
		res.Allocations = append(res.Allocations, alloc)
	}
	res.Teams = teamLoads(ordered, cfg)
	return res
}

func scheduleProject(rp rankedProject, ledgers map[string]*ledger, cfg Config) Allocation {
	p := rp.project
	start := max(p.StartWeek, 0)
	alloc := Allocation{
		ProjectID:      p.ID,
		ProjectName:    p.Name,
		Priority:       rp.priority,
		StoredPriority: p.Priority,
		Status:         p.Status,
		StartWeek:      start,
		EndWeek:        start,
		Teams:          []TeamAllocation{},
	}

	placed := false
	for i := range p.Estimates {
		e := &p.Estimates[i]
		l, ok := ledgers[e.TeamID]
		if !ok || e.Total() <= epsilon {
			continue
		}
		ta := placeTeam(l, e, start, cfg)
		alloc.Hours += ta.Hours
		alloc.UnscheduledHours += ta.UnscheduledHours
		if len(ta.Phases) > 0 {
			if !placed || ta.StartWeek < alloc.StartWeek {
				alloc.StartWeek = ta.StartWeek
			}
			if !placed || ta.EndWeek > alloc.EndWeek {
				alloc.EndWeek = ta.EndWeek
			}
			placed = true
		}
		alloc.Teams = append(alloc.Teams, ta)
	}

	alloc.Feasible = alloc.UnscheduledHours <= epsilon && alloc.EndWeek <= cfg.HorizonWeeks-1
	return alloc
}

// placeTeam lays the five phases out back to back. A phase may begin in the
// week its predecessor finished if capacity remains there.
func placeTeam(l *ledger, e *model.TeamEstimate, start int, cfg Config) TeamAllocation {
	ta := TeamAllocation{
		TeamID:    l.team.ID,
		TeamName:  l.team.Name,
		StartWeek: start,
		EndWeek:   start,
		Phases:    []PhaseAllocation{},
	}

	cursor := start
	for _, phase := range model.Phases {
		owed := clampNonNegative(e.Hours(phase))
		if owed <= epsilon {
			continue
		}
		pa := PhaseAllocation{Phase: phase, Hours: owed}
		week := cursor
		for owed > epsilon {
			if week >= cfg.MaxScheduleWeeks {
				ta.UnscheduledHours += owed
				break
			}
			if avail := l.remaining(week); avail > epsilon {
				take := min(avail, owed)
				l.consume(week, take)
				pa.place(week, take)
				owed -= take
				ta.Hours += take
			}
			if owed > epsilon {
				week++
			}
		}
		cursor = week
		if len(pa.WeeklyHours) == 0 {
			continue
		}
		if len(ta.Phases) == 0 {
			ta.StartWeek = pa.StartWeek
		}
		ta.EndWeek = pa.EndWeek
		ta.Phases = append(ta.Phases, pa)
	}
	return ta
}

func teamLoads(ordered []*ledger, cfg Config) []TeamLoad {
	weeks := cfg.HorizonWeeks
	for _, l := range ordered {
		weeks = max(weeks, len(l.capacity))
	}
	loads := make([]TeamLoad, 0, len(ordered))
	for _, l := range ordered {
		l.ensure(weeks - 1)
		loads = append(loads, TeamLoad{
			TeamID:      l.team.ID,
			TeamName:    l.team.Name,
			WeeklyHours: l.base,
			Capacity:    slices.Clone(l.capacity[:weeks]),
			Consumed:    slices.Clone(l.consumed[:weeks]),
		})
	}
	return loads
}
