package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
)

func orgTeams(ids ...string) *mockTeamRepository {
	return &mockTeamRepository{
		listFunc: func(ctx context.Context, orgID string) ([]*model.Team, error) {
			teams := make([]*model.Team, 0, len(ids))
			for _, id := range ids {
				teams = append(teams, &model.Team{ID: id, OrgID: orgID, Name: id})
			}
			return teams, nil
		},
	}
}

func TestProjectService_List(t *testing.T) {
	want := []*model.Project{{ID: "p1", Name: "ERP upgrade", Priority: 1}}
	repo := &mockProjectRepository{
		listFunc: func(ctx context.Context, orgID string) ([]*model.Project, error) {
			return want, nil
		},
	}

	got, err := NewProjectService(repo, orgTeams()).List(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestProjectService_Create_DefaultsStatus(t *testing.T) {
	var created *model.Project
	repo := &mockProjectRepository{
		createFunc: func(ctx context.Context, project *model.Project) error {
			created = project
			project.ID = "new-id"
			return nil
		},
	}

	p := &model.Project{OrgID: "org-1", Name: "CRM", Estimates: []model.TeamEstimate{{TeamID: "t1", Development: 100}}}
	if err := NewProjectService(repo, orgTeams("t1")).Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.Status != model.StatusNotStarted {
		t.Errorf("expected status not_started, got %+v", created)
	}
	if p.ID != "new-id" {
		t.Errorf("expected ID to be set, got %q", p.ID)
	}
}

func TestProjectService_Create_RejectsUnknownTeam(t *testing.T) {
	repo := &mockProjectRepository{
		createFunc: func(ctx context.Context, project *model.Project) error {
			t.Error("repository must not be called")
			return nil
		},
	}
	p := &model.Project{OrgID: "org-1", Name: "CRM", Estimates: []model.TeamEstimate{{TeamID: "other-org-team", Development: 10}}}

	err := NewProjectService(repo, orgTeams("t1")).Create(context.Background(), p)
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestProjectService_Create_Validation(t *testing.T) {
	svc := NewProjectService(&mockProjectRepository{}, orgTeams("t1"))
	tests := []struct {
		name    string
		project model.Project
	}{
		{"missing name", model.Project{}},
		{"bad status", model.Project{Name: "X", Status: "paused"}},
		{"negative start", model.Project{Name: "X", StartWeek: -1}},
		{"negative hours", model.Project{Name: "X", Estimates: []model.TeamEstimate{{TeamID: "t1", Testing: -1}}}},
		{"duplicate team", model.Project{Name: "X", Estimates: []model.TeamEstimate{{TeamID: "t1"}, {TeamID: "t1"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), &tt.project); !errors.Is(err, model.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestProjectService_Update_IgnoresEstimates(t *testing.T) {
	var updated *model.Project
	repo := &mockProjectRepository{
		updateFunc: func(ctx context.Context, project *model.Project) error {
			updated = project
			return nil
		},
	}
	p := &model.Project{
		ID: "p1", OrgID: "org-1", Name: "CRM", Status: model.StatusActive,
		Estimates: []model.TeamEstimate{{TeamID: "t1"}, {TeamID: "t1"}},
	}

	if err := NewProjectService(repo, orgTeams()).Update(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || len(updated.Estimates) != 2 {
		t.Errorf("expected estimates to be left untouched, got %+v", updated)
	}
}

func TestProjectService_ReplaceEstimates(t *testing.T) {
	var got []model.TeamEstimate
	repo := &mockProjectRepository{
		replaceEstimatesFunc: func(ctx context.Context, orgID, projectID string, estimates []model.TeamEstimate) error {
			if projectID != "p1" {
				t.Errorf("expected p1, got %s", projectID)
			}
			got = estimates
			return nil
		},
	}
	svc := NewProjectService(repo, orgTeams("t1", "t2"))

	estimates := []model.TeamEstimate{{TeamID: "t1", Development: 120}, {TeamID: "t2", Testing: 40}}
	if err := svc.ReplaceEstimates(context.Background(), "org-1", "p1", estimates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 estimates, got %d", len(got))
	}

	dup := []model.TeamEstimate{{TeamID: "t1"}, {TeamID: "t1"}}
	if err := svc.ReplaceEstimates(context.Background(), "org-1", "p1", dup); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation for duplicates, got %v", err)
	}
}

func TestProjectService_ReplaceEstimates_ProjectMissing(t *testing.T) {
	repo := &mockProjectRepository{
		replaceEstimatesFunc: func(ctx context.Context, orgID, projectID string, estimates []model.TeamEstimate) error {
			return repository.ErrNotFound
		},
	}
	err := NewProjectService(repo, orgTeams()).ReplaceEstimates(context.Background(), "org-1", "nope", nil)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectService_Delete(t *testing.T) {
	repo := &mockProjectRepository{
		deleteFunc: func(ctx context.Context, orgID, id string) error {
			return repository.ErrNotFound
		},
	}
	err := NewProjectService(repo, orgTeams()).Delete(context.Background(), "org-1", "p1")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
