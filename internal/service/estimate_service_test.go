package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
)

func TestEstimateService_Phases(t *testing.T) {
	svc := NewEstimateService(&mockProjectRepository{}, defaultSettings())

	phases, err := svc.Phases(context.Background(), "org-1", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := planning.PhaseHours{TechnicalDesign: 25, Development: 100, Testing: 37.5, Deployment: 0, Support: 10}
	if phases != want {
		t.Errorf("expected %+v, got %+v", want, phases)
	}
}

func TestEstimateService_Phases_Negative(t *testing.T) {
	svc := NewEstimateService(&mockProjectRepository{}, defaultSettings())

	_, err := svc.Phases(context.Background(), "org-1", -1)
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestEstimateService_Summary_UsesOrgRate(t *testing.T) {
	rate := 200.0
	settings := NewSettingsResolver(&mockOrgSettingsRepository{
		getFunc: func(ctx context.Context, orgID string) (*model.OrgSettings, error) {
			return &model.OrgSettings{OrgID: orgID, BlendedRate: &rate}, nil
		},
	}, planning.DefaultConfig())
	projects := &mockProjectRepository{
		getByIDFunc: func(ctx context.Context, orgID, id string) (*model.Project, error) {
			return &model.Project{ID: id, OrgID: orgID, Name: "ERP", Estimates: []model.TeamEstimate{
				{TeamID: "t1", Development: 80, PostDeploy: 20},
			}}, nil
		},
	}

	agg, err := NewEstimateService(projects, settings).Summary(context.Background(), "org-1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.TotalHours != 100 {
		t.Errorf("expected 100 hours, got %v", agg.TotalHours)
	}
	if agg.TotalCost != 20000 {
		t.Errorf("expected cost 20000, got %v", agg.TotalCost)
	}
	if agg.TotalCapex != 16000 || agg.TotalOpex != 4000 {
		t.Errorf("expected capex 16000 / opex 4000, got %v / %v", agg.TotalCapex, agg.TotalOpex)
	}
}

func TestEstimateService_Summary_NotFound(t *testing.T) {
	_, err := NewEstimateService(&mockProjectRepository{}, defaultSettings()).Summary(context.Background(), "org-1", "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingsResolver_IgnoresInvalidOverrides(t *testing.T) {
	zero := 0.0
	negative := -5.0
	settings := NewSettingsResolver(&mockOrgSettingsRepository{
		getFunc: func(ctx context.Context, orgID string) (*model.OrgSettings, error) {
			return &model.OrgSettings{OrgID: orgID, BlendedRate: &negative, HoursPerWeek: &zero}, nil
		},
	}, planning.DefaultConfig())

	cfg, err := settings.Config(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BlendedRate != planning.DefaultBlendedRate || cfg.HoursPerWeek != planning.DefaultHoursPerWeek {
		t.Errorf("expected defaults, got rate=%v hours=%v", cfg.BlendedRate, cfg.HoursPerWeek)
	}
}

func TestSettingsService_Update(t *testing.T) {
	var saved *model.OrgSettings
	svc := NewSettingsService(&mockOrgSettingsRepository{
		upsertFunc: func(ctx context.Context, settings *model.OrgSettings) error {
			saved = settings
			return nil
		},
	})

	hours := 37.5
	if err := svc.Update(context.Background(), &model.OrgSettings{OrgID: "org-1", HoursPerWeek: &hours}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil || *saved.HoursPerWeek != 37.5 {
		t.Errorf("expected settings to be saved, got %+v", saved)
	}

	bad := -1.0
	err := svc.Update(context.Background(), &model.OrgSettings{OrgID: "org-1", BlendedRate: &bad})
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
