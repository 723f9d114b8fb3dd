package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/cache"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/metrics"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
)

const (
	runBaseline = "baseline"
	runScenario = "scenario"
)

// AllocationService はポートフォリオのスナップショットを読み込み割当エンジンを実行する
type AllocationService interface {
	Baseline(ctx context.Context, orgID string) (*planning.Result, error)
	Scenario(ctx context.Context, orgID, scenarioID string) (*planning.Result, error)
	Compare(ctx context.Context, orgID, scenarioID string) (*planning.Comparison, error)
	CapacitySummary(ctx context.Context, orgID string) ([]planning.TeamSummary, error)
	SinglePointsOfFailure(ctx context.Context, orgID string) ([]planning.SkillHolder, error)
}

// AllocationRepos は割当入力の読み込みに必要なリポジトリ
type AllocationRepos struct {
	Teams     repository.TeamRepository
	Projects  repository.ProjectRepository
	Holidays  repository.HolidayRepository
	Resources repository.ResourceRepository
	PTO       repository.PTORepository
	Scenarios repository.ScenarioRepository
}

// AllocationServiceImpl は AllocationService の実装
type AllocationServiceImpl struct {
	repos    AllocationRepos
	settings *SettingsResolver
	cache    cache.ResultCache // nil = no caching
	metrics  *metrics.Metrics  // nil = no metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewAllocationService は AllocationServiceImpl を生成する
func NewAllocationService(repos AllocationRepos, settings *SettingsResolver, resultCache cache.ResultCache, m *metrics.Metrics, logger *slog.Logger) *AllocationServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AllocationServiceImpl{
		repos:    repos,
		settings: settings,
		cache:    resultCache,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Baseline はシナリオなしで割当を計算する
func (s *AllocationServiceImpl) Baseline(ctx context.Context, orgID string) (*planning.Result, error) {
	in, cfg, err := s.loadInput(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, runBaseline, in, cfg), nil
}

// Scenario はシナリオを重ねて割当を計算し、表示用スナップショットを保存する
func (s *AllocationServiceImpl) Scenario(ctx context.Context, orgID, scenarioID string) (*planning.Result, error) {
	scenario, err := s.repos.Scenarios.GetByID(ctx, orgID, scenarioID)
	if err != nil {
		return nil, err
	}
	in, cfg, err := s.loadInput(ctx, orgID)
	if err != nil {
		return nil, err
	}
	res := s.run(ctx, runScenario, planning.ApplyScenario(in, scenario), cfg)
	s.saveSnapshot(ctx, orgID, scenarioID, res)
	return res, nil
}

// Compare はベースラインとシナリオの差分を返す
func (s *AllocationServiceImpl) Compare(ctx context.Context, orgID, scenarioID string) (*planning.Comparison, error) {
	scenario, err := s.repos.Scenarios.GetByID(ctx, orgID, scenarioID)
	if err != nil {
		return nil, err
	}
	in, cfg, err := s.loadInput(ctx, orgID)
	if err != nil {
		return nil, err
	}
	baseline := s.run(ctx, runBaseline, in, cfg)
	scenarioRes := s.run(ctx, runScenario, planning.ApplyScenario(in, scenario), cfg)
	s.saveSnapshot(ctx, orgID, scenarioID, scenarioRes)

	diff := planning.Compare(baseline, scenarioRes)
	return &diff, nil
}

// CapacitySummary はベースライン割当からチーム別の稼働率を集計する
func (s *AllocationServiceImpl) CapacitySummary(ctx context.Context, orgID string) ([]planning.TeamSummary, error) {
	res, err := s.Baseline(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return planning.Summarize(res), nil
}

// SinglePointsOfFailure は 1 人しか持たないスキルを返す
func (s *AllocationServiceImpl) SinglePointsOfFailure(ctx context.Context, orgID string) ([]planning.SkillHolder, error) {
	resources, err := s.repos.Resources.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return planning.SinglePointsOfFailure(deref(resources)), nil
}

// loadInput は組織のポートフォリオを読み込みエンジン入力を組み立てる
func (s *AllocationServiceImpl) loadInput(ctx context.Context, orgID string) (planning.Input, planning.Config, error) {
	var in planning.Input

	cfg, err := s.settings.Config(ctx, orgID)
	if err != nil {
		return in, cfg, err
	}
	teams, err := s.repos.Teams.List(ctx, orgID)
	if err != nil {
		return in, cfg, err
	}
	projects, err := s.repos.Projects.List(ctx, orgID)
	if err != nil {
		return in, cfg, err
	}
	holidays, err := s.repos.Holidays.List(ctx, orgID)
	if err != nil {
		return in, cfg, err
	}
	resources, err := s.repos.Resources.List(ctx, orgID)
	if err != nil {
		return in, cfg, err
	}
	pto, err := s.repos.PTO.ListByOrg(ctx, orgID)
	if err != nil {
		return in, cfg, err
	}

	in = planning.Input{
		Teams:     deref(teams),
		Projects:  deref(projects),
		Holidays:  deref(holidays),
		Resources: deref(resources),
		PTO:       deref(pto),
	}
	return in, cfg, nil
}

// run はキャッシュを参照してからエンジンを実行する。キャッシュ障害は警告のみ
func (s *AllocationServiceImpl) run(ctx context.Context, kind string, in planning.Input, cfg planning.Config) *planning.Result {
	key, err := planning.Fingerprint(in, cfg)
	if err != nil {
		s.logger.Warn("fingerprint failed", "error", err)
		key = ""
	}

	if s.cache != nil && key != "" {
		if res, ok := s.cached(ctx, key); ok {
			return res
		}
	}

	start := s.now()
	res := planning.Run(in, cfg)
	elapsed := s.now().Sub(start)
	s.metrics.ObserveRun(kind, elapsed, len(res.Infeasible()))
	s.logger.Debug("allocation run",
		"kind", kind,
		"projects", len(res.Allocations),
		"infeasible", len(res.Infeasible()),
		"duration_ms", elapsed.Milliseconds(),
	)

	if s.cache != nil && key != "" {
		payload, err := json.Marshal(res)
		if err == nil {
			err = s.cache.Set(ctx, key, payload)
		}
		if err != nil {
			s.logger.Warn("allocation cache store failed", "error", err)
		}
	}
	return res
}

func (s *AllocationServiceImpl) cached(ctx context.Context, key string) (*planning.Result, bool) {
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.metrics.ObserveCache("error")
		s.logger.Warn("allocation cache lookup failed", "error", err)
		return nil, false
	}
	if !ok {
		s.metrics.ObserveCache("miss")
		return nil, false
	}
	var res planning.Result
	if err := json.Unmarshal(payload, &res); err != nil {
		s.metrics.ObserveCache("error")
		s.logger.Warn("allocation cache entry unreadable", "error", err)
		return nil, false
	}
	s.metrics.ObserveCache("hit")
	return &res, true
}

// saveSnapshot はシナリオ行に結果を保存する。失敗してもリクエストは成功させる
func (s *AllocationServiceImpl) saveSnapshot(ctx context.Context, orgID, scenarioID string, res *planning.Result) {
	payload, err := json.Marshal(res)
	if err == nil {
		err = s.repos.Scenarios.SaveSnapshot(ctx, orgID, scenarioID, payload, s.now())
	}
	if err != nil {
		s.logger.Warn("scenario snapshot save failed", "scenario_id", scenarioID, "error", err)
	}
}

func deref[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}

var _ AllocationService = (*AllocationServiceImpl)(nil)
