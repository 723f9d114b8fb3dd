package service

import (
	"context"
	"fmt"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
)

// EstimateService は工程別見積の導出と集計を行う
type EstimateService interface {
	Phases(ctx context.Context, orgID string, devHours float64) (planning.PhaseHours, error)
	Summary(ctx context.Context, orgID, projectID string) (*planning.Aggregate, error)
}

// EstimateServiceImpl は EstimateService の実装
type EstimateServiceImpl struct {
	projectRepo repository.ProjectRepository
	settings    *SettingsResolver
}

// NewEstimateService は EstimateServiceImpl を生成する
func NewEstimateService(projectRepo repository.ProjectRepository, settings *SettingsResolver) EstimateService {
	return &EstimateServiceImpl{projectRepo: projectRepo, settings: settings}
}

// Phases は開発時間から設計・テスト・展開・保守の時間を導出する
func (s *EstimateServiceImpl) Phases(ctx context.Context, orgID string, devHours float64) (planning.PhaseHours, error) {
	cfg, err := s.settings.Config(ctx, orgID)
	if err != nil {
		return planning.PhaseHours{}, err
	}
	phases, err := planning.EstimatePhases(devHours, cfg)
	if err != nil {
		return planning.PhaseHours{}, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	return phases, nil
}

// Summary はプロジェクトの見積をコスト・期間に集計する
func (s *EstimateServiceImpl) Summary(ctx context.Context, orgID, projectID string) (*planning.Aggregate, error) {
	project, err := s.projectRepo.GetByID(ctx, orgID, projectID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.Config(ctx, orgID)
	if err != nil {
		return nil, err
	}
	agg := planning.AggregateEstimates(project.Estimates, cfg)
	return &agg, nil
}
