package service

import (
	"context"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
)

// SettingsResolver は組織設定をサーバー設定に重ねた planning.Config を返す
type SettingsResolver struct {
	repo repository.OrgSettingsRepository
	base planning.Config
}

// NewSettingsResolver は SettingsResolver を生成する
func NewSettingsResolver(repo repository.OrgSettingsRepository, base planning.Config) *SettingsResolver {
	return &SettingsResolver{repo: repo, base: base.WithDefaults()}
}

// Config は orgID 用の planning.Config を返す
func (r *SettingsResolver) Config(ctx context.Context, orgID string) (planning.Config, error) {
	cfg := r.base
	if r.repo == nil {
		return cfg, nil
	}
	settings, err := r.repo.Get(ctx, orgID)
	if err != nil {
		return cfg, err
	}
	if settings.BlendedRate != nil && *settings.BlendedRate >= 0 {
		cfg.BlendedRate = *settings.BlendedRate
	}
	if settings.HoursPerWeek != nil && *settings.HoursPerWeek > 0 {
		cfg.HoursPerWeek = *settings.HoursPerWeek
	}
	return cfg, nil
}

// SettingsService は組織設定のビジネスロジック
type SettingsService interface {
	Get(ctx context.Context, orgID string) (*model.OrgSettings, error)
	Update(ctx context.Context, settings *model.OrgSettings) error
}

// SettingsServiceImpl は SettingsService の実装
type SettingsServiceImpl struct {
	repo repository.OrgSettingsRepository
}

// NewSettingsService は SettingsServiceImpl を生成する
func NewSettingsService(repo repository.OrgSettingsRepository) SettingsService {
	return &SettingsServiceImpl{repo: repo}
}

func (s *SettingsServiceImpl) Get(ctx context.Context, orgID string) (*model.OrgSettings, error) {
	return s.repo.Get(ctx, orgID)
}

// Update は検証後に組織設定を保存する
func (s *SettingsServiceImpl) Update(ctx context.Context, settings *model.OrgSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.repo.Upsert(ctx, settings)
}
