package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

func TestCompare_PrioritySwap(t *testing.T) {
	baseline := Input{
		Teams: []model.Team{devTeam("t1", 40)},
		Projects: []model.Project{
			devProject("p1", 1, "t1", 40*40),
			devProject("p2", 2, "t1", 20*40),
		},
	}
	scenario := baseline.WithOverlay(Overlay{PriorityOverrides: map[string]int{"p2": 0}})

	diff := Compare(Run(baseline, DefaultConfig()), Run(scenario, DefaultConfig()))

	require.Len(t, diff.Deltas, 2)
	p2 := diff.Deltas[0]
	assert.Equal(t, "p2", p2.ProjectID)
	assert.Equal(t, 59, p2.BaselineEnd)
	assert.Equal(t, 19, p2.ScenarioEnd)
	assert.Equal(t, -40, p2.EndShift)
	assert.True(t, p2.FeasibilityChanged)
	assert.False(t, p2.BaselineFeasible)
	assert.True(t, p2.ScenarioFeasible)

	p1 := diff.Deltas[1]
	assert.Equal(t, 39, p1.BaselineEnd)
	assert.Equal(t, 59, p1.ScenarioEnd)
	assert.Equal(t, 20, p1.EndShift)

	assert.Equal(t, 1, diff.BaselineInfeasible)
	assert.Equal(t, 1, diff.ScenarioInfeasible)
	assert.Equal(t, 1, diff.Improved)
	assert.Equal(t, 1, diff.Worsened)
}

func TestCompare_SkipsProjectsMissingFromBaseline(t *testing.T) {
	base := &Result{Allocations: []Allocation{{ProjectID: "a", Feasible: true}}}
	scen := &Result{Allocations: []Allocation{{ProjectID: "a", Feasible: true}, {ProjectID: "b"}}}

	diff := Compare(base, scen)
	require.Len(t, diff.Deltas, 1)
	assert.Equal(t, "a", diff.Deltas[0].ProjectID)
	assert.Zero(t, diff.Deltas[0].EndShift)
}
