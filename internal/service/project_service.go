package service

import (
	"context"
	"fmt"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
)

// ProjectService はプロジェクトとチーム別見積のビジネスロジック
type ProjectService interface {
	List(ctx context.Context, orgID string) ([]*model.Project, error)
	GetByID(ctx context.Context, orgID, id string) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, orgID, id string) error
	ReplaceEstimates(ctx context.Context, orgID, projectID string, estimates []model.TeamEstimate) error
}

// ProjectServiceImpl は ProjectService の実装
type ProjectServiceImpl struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
}

// NewProjectService は ProjectServiceImpl を生成する（DI: ProjectRepository / TeamRepository を注入）
func NewProjectService(projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository) ProjectService {
	return &ProjectServiceImpl{projectRepo: projectRepo, teamRepo: teamRepo}
}

// List はプロジェクト一覧を優先度順で取得する
func (s *ProjectServiceImpl) List(ctx context.Context, orgID string) ([]*model.Project, error) {
	return s.projectRepo.List(ctx, orgID)
}

// GetByID は ID でプロジェクトを取得する
func (s *ProjectServiceImpl) GetByID(ctx context.Context, orgID, id string) (*model.Project, error) {
	return s.projectRepo.GetByID(ctx, orgID, id)
}

// Create はプロジェクトを作成する。状態が空なら not_started とする
func (s *ProjectServiceImpl) Create(ctx context.Context, project *model.Project) error {
	if project.Status == "" {
		project.Status = model.StatusNotStarted
	}
	if err := project.Validate(); err != nil {
		return err
	}
	if err := s.checkTeams(ctx, project.OrgID, project.Estimates); err != nil {
		return err
	}
	return s.projectRepo.Create(ctx, project)
}

// Update はプロジェクトを更新する（見積は ReplaceEstimates で扱う）
func (s *ProjectServiceImpl) Update(ctx context.Context, project *model.Project) error {
	if project.Status == "" {
		project.Status = model.StatusNotStarted
	}
	estimates := project.Estimates
	project.Estimates = nil
	err := project.Validate()
	project.Estimates = estimates
	if err != nil {
		return err
	}
	return s.projectRepo.Update(ctx, project)
}

// Delete はプロジェクトを削除する
func (s *ProjectServiceImpl) Delete(ctx context.Context, orgID, id string) error {
	return s.projectRepo.Delete(ctx, orgID, id)
}

// ReplaceEstimates は見積を検証して置き換える
func (s *ProjectServiceImpl) ReplaceEstimates(ctx context.Context, orgID, projectID string, estimates []model.TeamEstimate) error {
	seen := make(map[string]bool, len(estimates))
	for i := range estimates {
		e := &estimates[i]
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.TeamID] {
			return fmt.Errorf("%w: duplicate estimate for team %s", model.ErrValidation, e.TeamID)
		}
		seen[e.TeamID] = true
	}
	if err := s.checkTeams(ctx, orgID, estimates); err != nil {
		return err
	}
	return s.projectRepo.ReplaceEstimates(ctx, orgID, projectID, estimates)
}

// checkTeams は見積が同じ組織のチームだけを参照していることを確認する
func (s *ProjectServiceImpl) checkTeams(ctx context.Context, orgID string, estimates []model.TeamEstimate) error {
	if len(estimates) == 0 {
		return nil
	}
	teams, err := s.teamRepo.List(ctx, orgID)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(teams))
	for _, t := range teams {
		known[t.ID] = true
	}
	for _, e := range estimates {
		if !known[e.TeamID] {
			return fmt.Errorf("%w: unknown team %s", model.ErrValidation, e.TeamID)
		}
	}
	return nil
}
