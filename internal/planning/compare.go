package planning

// ProjectDelta describes how one project moves between two engine runs.
type ProjectDelta struct {
	ProjectID        string `json:"project_id"`
	ProjectName      string `json:"project_name"`
	BaselinePriority int    `json:"baseline_priority"`
	ScenarioPriority int    `json:"scenario_priority"`
	BaselineStart    int    `json:"baseline_start_week"`
	BaselineEnd      int    `json:"baseline_end_week"`
	ScenarioStart    int    `json:"scenario_start_week"`
	ScenarioEnd      int    `json:"scenario_end_week"`
	// EndShift is positive when the scenario finishes later than the baseline.
	EndShift           int  `json:"end_shift_weeks"`
	BaselineFeasible   bool `json:"baseline_feasible"`
	ScenarioFeasible   bool `json:"scenario_feasible"`
	FeasibilityChanged bool `json:"feasibility_changed"`
}

// Comparison summarises a scenario against the baseline.
type Comparison struct {
	Deltas             []ProjectDelta `json:"deltas"`
	BaselineInfeasible int            `json:"baseline_infeasible"`
	ScenarioInfeasible int            `json:"scenario_infeasible"`
	Improved           int            `json:"improved"`
	Worsened           int            `json:"worsened"`
}

// Compare pairs the allocations of both runs by project ID, in scenario order.
// Projects present in only one run are skipped.
func Compare(baseline, scenario *Result) Comparison {
	out := Comparison{Deltas: []ProjectDelta{}}
	out.BaselineInfeasible = len(baseline.Infeasible())
	out.ScenarioInfeasible = len(scenario.Infeasible())

	for _, s := range scenario.Allocations {
		b, ok := baseline.Allocation(s.ProjectID)
		if !ok {
			continue
		}
		d := ProjectDelta{
			ProjectID:          s.ProjectID,
			ProjectName:        s.ProjectName,
			BaselinePriority:   b.Priority,
			ScenarioPriority:   s.Priority,
			BaselineStart:      b.StartWeek,
			BaselineEnd:        b.EndWeek,
			ScenarioStart:      s.StartWeek,
			ScenarioEnd:        s.EndWeek,
			EndShift:           s.EndWeek - b.EndWeek,
			BaselineFeasible:   b.Feasible,
			ScenarioFeasible:   s.Feasible,
			FeasibilityChanged: b.Feasible != s.Feasible,
		}
		switch {
		case d.EndShift < 0:
			out.Improved++
		case d.EndShift > 0:
			out.Worsened++
		}
		out.Deltas = append(out.Deltas, d)
	}
	return out
}
