package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/cache"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/metrics"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// one developer (40h/week) and two projects: p1 needs two weeks, p2 one week
func allocationRepos(scenarios *mockScenarioRepository) AllocationRepos {
	return AllocationRepos{
		Teams: &mockTeamRepository{
			listFunc: func(ctx context.Context, orgID string) ([]*model.Team, error) {
				return []*model.Team{{ID: "t1", OrgID: orgID, Name: "Core", Staffing: model.Staffing{Developer: 1}}}, nil
			},
		},
		Projects: &mockProjectRepository{
			listFunc: func(ctx context.Context, orgID string) ([]*model.Project, error) {
				return []*model.Project{
					{ID: "p1", Name: "ERP", Priority: 1, Status: model.StatusNotStarted, Estimates: []model.TeamEstimate{{TeamID: "t1", Development: 80}}},
					{ID: "p2", Name: "CRM", Priority: 2, Status: model.StatusNotStarted, Estimates: []model.TeamEstimate{{TeamID: "t1", Development: 40}}},
					{ID: "p3", Name: "Legacy", Priority: 0, Status: model.StatusComplete, Estimates: []model.TeamEstimate{{TeamID: "t1", Development: 400}}},
				}, nil
			},
		},
		Holidays:  &mockHolidayRepository{},
		Resources: &mockResourceRepository{},
		PTO:       &mockPTORepository{},
		Scenarios: scenarios,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingCache records traffic through a Memory cache.
type countingCache struct {
	*cache.Memory
	gets, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	return c.Memory.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte) error {
	c.sets++
	return c.Memory.Set(ctx, key, value)
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestAllocationService_Baseline(t *testing.T) {
	svc := NewAllocationService(allocationRepos(&mockScenarioRepository{}), defaultSettings(), nil, nil, discardLogger())

	res, err := svc.Baseline(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(res.Allocations))
	}
	if len(res.Excluded) != 1 || res.Excluded[0] != "p3" {
		t.Errorf("expected p3 excluded, got %v", res.Excluded)
	}
	p1, _ := res.Allocation("p1")
	p2, _ := res.Allocation("p2")
	if p1.StartWeek != 0 || p1.EndWeek != 1 {
		t.Errorf("p1: expected weeks 0-1, got %d-%d", p1.StartWeek, p1.EndWeek)
	}
	if p2.StartWeek != 2 || p2.EndWeek != 2 {
		t.Errorf("p2: expected week 2, got %d-%d", p2.StartWeek, p2.EndWeek)
	}
	if res.RedLineIndex != -1 {
		t.Errorf("expected no red line, got %d", res.RedLineIndex)
	}
}

func TestAllocationService_Baseline_RepositoryError(t *testing.T) {
	repos := allocationRepos(&mockScenarioRepository{})
	boom := errors.New("connection refused")
	repos.Projects = &mockProjectRepository{
		listFunc: func(ctx context.Context, orgID string) ([]*model.Project, error) { return nil, boom },
	}

	_, err := NewAllocationService(repos, defaultSettings(), nil, nil, discardLogger()).Baseline(context.Background(), "org-1")
	if !errors.Is(err, boom) {
		t.Errorf("expected repository error, got %v", err)
	}
}

func TestAllocationService_Baseline_UsesCache(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, reg)
	rc := &countingCache{Memory: cache.NewMemory(time.Minute, 0)}
	svc := NewAllocationService(allocationRepos(&mockScenarioRepository{}), defaultSettings(), rc, m, discardLogger())

	first, err := svc.Baseline(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Baseline(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rc.gets != 2 || rc.sets != 1 {
		t.Errorf("expected 2 gets and 1 set, got %d gets and %d sets", rc.gets, rc.sets)
	}
	if got := counterValue(t, reg, "planner_engine_runs_total", "kind", "baseline"); got != 1 {
		t.Errorf("expected 1 engine run, got %v", got)
	}
	if got := counterValue(t, reg, "planner_cache_lookups_total", "result", "hit"); got != 1 {
		t.Errorf("expected 1 cache hit, got %v", got)
	}
	if got := counterValue(t, reg, "planner_cache_lookups_total", "result", "miss"); got != 1 {
		t.Errorf("expected 1 cache miss, got %v", got)
	}
	a, _ := first.Allocation("p2")
	b, _ := second.Allocation("p2")
	if a.EndWeek != b.EndWeek || a.Feasible != b.Feasible {
		t.Errorf("cached result differs: %+v vs %+v", a, b)
	}
}

// failingCache always errors; runs must still succeed.
type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("redis down")
}
func (failingCache) Set(context.Context, string, []byte) error { return errors.New("redis down") }
func (failingCache) Close() error                              { return nil }

func TestAllocationService_CacheFailureFallsBack(t *testing.T) {
	svc := NewAllocationService(allocationRepos(&mockScenarioRepository{}), defaultSettings(), failingCache{}, nil, discardLogger())

	res, err := svc.Baseline(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Allocations) != 2 {
		t.Errorf("expected 2 allocations, got %d", len(res.Allocations))
	}
}

func promoteCRM() *mockScenarioRepository {
	return &mockScenarioRepository{
		getByIDFunc: func(ctx context.Context, orgID, id string) (*model.Scenario, error) {
			return &model.Scenario{
				ID: id, OrgID: orgID, Name: "CRM first",
				PriorityOverrides: []model.PriorityOverride{{ProjectID: "p2", Priority: 0}},
			}, nil
		},
	}
}

func TestAllocationService_Scenario_SavesSnapshot(t *testing.T) {
	scenarios := promoteCRM()
	var savedID string
	var savedAt time.Time
	scenarios.saveSnapshotFunc = func(ctx context.Context, orgID, id string, snapshot []byte, at time.Time) error {
		savedID, savedAt = id, at
		if len(snapshot) == 0 {
			t.Error("expected a non-empty snapshot")
		}
		return nil
	}
	fixed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := NewAllocationService(allocationRepos(scenarios), defaultSettings(), nil, nil, discardLogger())
	svc.now = func() time.Time { return fixed }

	res, err := svc.Scenario(context.Background(), "org-1", "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Allocations[0].ProjectID != "p2" {
		t.Errorf("expected p2 first, got %s", res.Allocations[0].ProjectID)
	}
	p1, _ := res.Allocation("p1")
	if p1.StartWeek != 1 || p1.EndWeek != 2 {
		t.Errorf("p1: expected weeks 1-2, got %d-%d", p1.StartWeek, p1.EndWeek)
	}
	if savedID != "s1" || !savedAt.Equal(fixed) {
		t.Errorf("expected snapshot for s1 at %v, got %q at %v", fixed, savedID, savedAt)
	}
}

func TestAllocationService_Scenario_SnapshotFailureIgnored(t *testing.T) {
	scenarios := promoteCRM()
	scenarios.saveSnapshotFunc = func(ctx context.Context, orgID, id string, snapshot []byte, at time.Time) error {
		return errors.New("disk full")
	}
	svc := NewAllocationService(allocationRepos(scenarios), defaultSettings(), nil, nil, discardLogger())

	if _, err := svc.Scenario(context.Background(), "org-1", "s1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAllocationService_Scenario_NotFound(t *testing.T) {
	svc := NewAllocationService(allocationRepos(&mockScenarioRepository{}), defaultSettings(), nil, nil, discardLogger())

	if _, err := svc.Scenario(context.Background(), "org-1", "missing"); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestAllocationService_Compare(t *testing.T) {
	svc := NewAllocationService(allocationRepos(promoteCRM()), defaultSettings(), nil, nil, discardLogger())

	diff, err := svc.Compare(context.Background(), "org-1", "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diff.Deltas) != 2 {
		t.Fatalf("expected 2 deltas, got %d", len(diff.Deltas))
	}
	for _, d := range diff.Deltas {
		switch d.ProjectID {
		case "p1":
			if d.EndShift != 1 {
				t.Errorf("p1: expected shift +1, got %d", d.EndShift)
			}
		case "p2":
			if d.EndShift != -2 {
				t.Errorf("p2: expected shift -2, got %d", d.EndShift)
			}
		}
	}
}

func TestAllocationService_CapacitySummary(t *testing.T) {
	svc := NewAllocationService(allocationRepos(&mockScenarioRepository{}), defaultSettings(), nil, nil, discardLogger())

	summary, err := svc.CapacitySummary(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary) != 1 {
		t.Fatalf("expected 1 team, got %d", len(summary))
	}
	if summary[0].AllocatedHours != 120 {
		t.Errorf("expected 120 allocated hours, got %v", summary[0].AllocatedHours)
	}
	if summary[0].FullyBookedWeeks != 3 {
		t.Errorf("expected 3 fully booked weeks, got %d", summary[0].FullyBookedWeeks)
	}
}

func TestAllocationService_SinglePointsOfFailure(t *testing.T) {
	repos := allocationRepos(&mockScenarioRepository{})
	repos.Resources = &mockResourceRepository{
		listFunc: func(ctx context.Context, orgID string) ([]*model.Resource, error) {
			return []*model.Resource{
				{ID: "r1", TeamID: "t1", Name: "Ana", Role: model.RoleDBA, Skills: []string{"Oracle", "Postgres"}},
				{ID: "r2", TeamID: "t1", Name: "Ben", Role: model.RoleDeveloper, Skills: []string{"postgres"}},
			}, nil
		},
	}

	spof, err := NewAllocationService(repos, defaultSettings(), nil, nil, discardLogger()).SinglePointsOfFailure(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spof) != 1 || spof[0].ResourceID != "r1" {
		t.Errorf("expected Oracle held only by r1, got %+v", spof)
	}
}
