package service

import (
	"context"
	"fmt"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
)

// ScenarioService はシナリオ（仮説オーバーレイ）のビジネスロジック
type ScenarioService interface {
	List(ctx context.Context, orgID string) ([]*model.Scenario, error)
	GetByID(ctx context.Context, orgID, id string) (*model.Scenario, error)
	Create(ctx context.Context, scenario *model.Scenario) error
	Update(ctx context.Context, scenario *model.Scenario) error
	Delete(ctx context.Context, orgID, id string) error
	// Clone は契約者と上書きを複製した新しいシナリオを作成する
	Clone(ctx context.Context, orgID, id, name string) (*model.Scenario, error)
}

// ScenarioServiceImpl は ScenarioService の実装
type ScenarioServiceImpl struct {
	scenarioRepo repository.ScenarioRepository
	teamRepo     repository.TeamRepository
	projectRepo  repository.ProjectRepository
}

// NewScenarioService は ScenarioServiceImpl を生成する
func NewScenarioService(scenarioRepo repository.ScenarioRepository, teamRepo repository.TeamRepository, projectRepo repository.ProjectRepository) ScenarioService {
	return &ScenarioServiceImpl{scenarioRepo: scenarioRepo, teamRepo: teamRepo, projectRepo: projectRepo}
}

func (s *ScenarioServiceImpl) List(ctx context.Context, orgID string) ([]*model.Scenario, error) {
	return s.scenarioRepo.List(ctx, orgID)
}

func (s *ScenarioServiceImpl) GetByID(ctx context.Context, orgID, id string) (*model.Scenario, error) {
	return s.scenarioRepo.GetByID(ctx, orgID, id)
}

// Create は検証後にシナリオを作成する
func (s *ScenarioServiceImpl) Create(ctx context.Context, scenario *model.Scenario) error {
	if err := s.validate(ctx, scenario); err != nil {
		return err
	}
	return s.scenarioRepo.Create(ctx, scenario)
}

// Update は検証後にシナリオを置き換える
func (s *ScenarioServiceImpl) Update(ctx context.Context, scenario *model.Scenario) error {
	if err := s.validate(ctx, scenario); err != nil {
		return err
	}
	return s.scenarioRepo.Update(ctx, scenario)
}

func (s *ScenarioServiceImpl) Delete(ctx context.Context, orgID, id string) error {
	return s.scenarioRepo.Delete(ctx, orgID, id)
}

// Clone は既存シナリオを複製する。name が空なら "<元の名前> (copy)" とする
func (s *ScenarioServiceImpl) Clone(ctx context.Context, orgID, id, name string) (*model.Scenario, error) {
	src, err := s.scenarioRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = src.Name + " (copy)"
	}
	clone := &model.Scenario{
		OrgID:             orgID,
		Name:              name,
		Description:       src.Description,
		Contractors:       make([]model.Contractor, 0, len(src.Contractors)),
		PriorityOverrides: make([]model.PriorityOverride, 0, len(src.PriorityOverrides)),
	}
	for _, c := range src.Contractors {
		c.ID, c.ScenarioID = "", ""
		clone.Contractors = append(clone.Contractors, c)
	}
	for _, o := range src.PriorityOverrides {
		o.ScenarioID = ""
		clone.PriorityOverrides = append(clone.PriorityOverrides, o)
	}
	if err := s.scenarioRepo.Create(ctx, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// validate はモデル検証に加え、参照するチームとプロジェクトが組織内に存在することを確認する
func (s *ScenarioServiceImpl) validate(ctx context.Context, scenario *model.Scenario) error {
	if err := scenario.Validate(); err != nil {
		return err
	}
	if len(scenario.Contractors) > 0 {
		teams, err := s.teamRepo.List(ctx, scenario.OrgID)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(teams))
		for _, t := range teams {
			known[t.ID] = true
		}
		for _, c := range scenario.Contractors {
			if !known[c.TeamID] {
				return fmt.Errorf("%w: unknown team %s", model.ErrValidation, c.TeamID)
			}
		}
	}
	if len(scenario.PriorityOverrides) > 0 {
		projects, err := s.projectRepo.List(ctx, scenario.OrgID)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(projects))
		for _, p := range projects {
			known[p.ID] = true
		}
		for _, o := range scenario.PriorityOverrides {
			if !known[o.ProjectID] {
				return fmt.Errorf("%w: unknown project %s", model.ErrValidation, o.ProjectID)
			}
		}
	}
	return nil
}
