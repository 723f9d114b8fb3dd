package service

import (
	"context"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
)

// TeamService はチームのビジネスロジック
type TeamService interface {
	List(ctx context.Context, orgID string) ([]*model.Team, error)
	GetByID(ctx context.Context, orgID, id string) (*model.Team, error)
	Create(ctx context.Context, team *model.Team) error
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, orgID, id string) error
}

// TeamServiceImpl は TeamService の実装
type TeamServiceImpl struct {
	repo     repository.TeamRepository
	settings *SettingsResolver
}

// NewTeamService は TeamServiceImpl を生成する
func NewTeamService(repo repository.TeamRepository, settings *SettingsResolver) TeamService {
	return &TeamServiceImpl{repo: repo, settings: settings}
}

// List はチーム一覧を実効週時間付きで返す
func (s *TeamServiceImpl) List(ctx context.Context, orgID string) ([]*model.Team, error) {
	teams, err := s.repo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.Config(ctx, orgID)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		t.EffectiveWeeklyHours = planning.EffectiveWeeklyHours(t, cfg)
	}
	return teams, nil
}

// GetByID はチームを実効週時間付きで返す
func (s *TeamServiceImpl) GetByID(ctx context.Context, orgID, id string) (*model.Team, error) {
	team, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.Config(ctx, orgID)
	if err != nil {
		return nil, err
	}
	team.EffectiveWeeklyHours = planning.EffectiveWeeklyHours(team, cfg)
	return team, nil
}

// Create は検証後にチームを作成する
func (s *TeamServiceImpl) Create(ctx context.Context, team *model.Team) error {
	if err := team.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, team)
}

// Update は検証後にチームを更新する
func (s *TeamServiceImpl) Update(ctx context.Context, team *model.Team) error {
	if err := team.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, team)
}

// Delete はチームを削除する
func (s *TeamServiceImpl) Delete(ctx context.Context, orgID, id string) error {
	return s.repo.Delete(ctx, orgID, id)
}
