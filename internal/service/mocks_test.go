package service

import (
	"context"
	"time"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
)

// ---------------------------------------------------------------------------
// Mock TeamRepository
// ---------------------------------------------------------------------------

type mockTeamRepository struct {
	listFunc    func(ctx context.Context, orgID string) ([]*model.Team, error)
	getByIDFunc func(ctx context.Context, orgID, id string) (*model.Team, error)
	createFunc  func(ctx context.Context, team *model.Team) error
	updateFunc  func(ctx context.Context, team *model.Team) error
	deleteFunc  func(ctx context.Context, orgID, id string) error
}

func (m *mockTeamRepository) List(ctx context.Context, orgID string) ([]*model.Team, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockTeamRepository) GetByID(ctx context.Context, orgID, id string) (*model.Team, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, orgID, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockTeamRepository) Create(ctx context.Context, team *model.Team) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, team)
	}
	return nil
}
func (m *mockTeamRepository) Update(ctx context.Context, team *model.Team) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, team)
	}
	return nil
}
func (m *mockTeamRepository) Delete(ctx context.Context, orgID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, orgID, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock ProjectRepository
// ---------------------------------------------------------------------------

type mockProjectRepository struct {
	listFunc             func(ctx context.Context, orgID string) ([]*model.Project, error)
	getByIDFunc          func(ctx context.Context, orgID, id string) (*model.Project, error)
	createFunc           func(ctx context.Context, project *model.Project) error
	updateFunc           func(ctx context.Context, project *model.Project) error
	deleteFunc           func(ctx context.Context, orgID, id string) error
	replaceEstimatesFunc func(ctx context.Context, orgID, projectID string, estimates []model.TeamEstimate) error
}

func (m *mockProjectRepository) List(ctx context.Context, orgID string) ([]*model.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockProjectRepository) GetByID(ctx context.Context, orgID, id string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, orgID, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	return nil
}
func (m *mockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, project)
	}
	return nil
}
func (m *mockProjectRepository) Delete(ctx context.Context, orgID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, orgID, id)
	}
	return nil
}
func (m *mockProjectRepository) ReplaceEstimates(ctx context.Context, orgID, projectID string, estimates []model.TeamEstimate) error {
	if m.replaceEstimatesFunc != nil {
		return m.replaceEstimatesFunc(ctx, orgID, projectID, estimates)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock calendar repositories
// ---------------------------------------------------------------------------

type mockHolidayRepository struct {
	listFunc   func(ctx context.Context, orgID string) ([]*model.Holiday, error)
	createFunc func(ctx context.Context, holiday *model.Holiday) error
	deleteFunc func(ctx context.Context, orgID, id string) error
}

func (m *mockHolidayRepository) List(ctx context.Context, orgID string) ([]*model.Holiday, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockHolidayRepository) Create(ctx context.Context, holiday *model.Holiday) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, holiday)
	}
	return nil
}
func (m *mockHolidayRepository) Delete(ctx context.Context, orgID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, orgID, id)
	}
	return nil
}

type mockResourceRepository struct {
	listFunc    func(ctx context.Context, orgID string) ([]*model.Resource, error)
	getByIDFunc func(ctx context.Context, orgID, id string) (*model.Resource, error)
	createFunc  func(ctx context.Context, resource *model.Resource) error
	deleteFunc  func(ctx context.Context, orgID, id string) error
}

func (m *mockResourceRepository) List(ctx context.Context, orgID string) ([]*model.Resource, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockResourceRepository) GetByID(ctx context.Context, orgID, id string) (*model.Resource, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, orgID, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, resource)
	}
	return nil
}
func (m *mockResourceRepository) Delete(ctx context.Context, orgID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, orgID, id)
	}
	return nil
}

type mockPTORepository struct {
	listByOrgFunc      func(ctx context.Context, orgID string) ([]*model.PTOEntry, error)
	listByResourceFunc func(ctx context.Context, orgID, resourceID string) ([]*model.PTOEntry, error)
	createFunc         func(ctx context.Context, orgID string, entry *model.PTOEntry) error
	deleteFunc         func(ctx context.Context, orgID, id string) error
}

func (m *mockPTORepository) ListByOrg(ctx context.Context, orgID string) ([]*model.PTOEntry, error) {
	if m.listByOrgFunc != nil {
		return m.listByOrgFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockPTORepository) ListByResource(ctx context.Context, orgID, resourceID string) ([]*model.PTOEntry, error) {
	if m.listByResourceFunc != nil {
		return m.listByResourceFunc(ctx, orgID, resourceID)
	}
	return nil, nil
}
func (m *mockPTORepository) Create(ctx context.Context, orgID string, entry *model.PTOEntry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, orgID, entry)
	}
	return nil
}
func (m *mockPTORepository) Delete(ctx context.Context, orgID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, orgID, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock ScenarioRepository / OrgSettingsRepository
// ---------------------------------------------------------------------------

type mockScenarioRepository struct {
	listFunc         func(ctx context.Context, orgID string) ([]*model.Scenario, error)
	getByIDFunc      func(ctx context.Context, orgID, id string) (*model.Scenario, error)
	createFunc       func(ctx context.Context, scenario *model.Scenario) error
	updateFunc       func(ctx context.Context, scenario *model.Scenario) error
	deleteFunc       func(ctx context.Context, orgID, id string) error
	saveSnapshotFunc func(ctx context.Context, orgID, id string, snapshot []byte, at time.Time) error
}

func (m *mockScenarioRepository) List(ctx context.Context, orgID string) ([]*model.Scenario, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockScenarioRepository) GetByID(ctx context.Context, orgID, id string) (*model.Scenario, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, orgID, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockScenarioRepository) Create(ctx context.Context, scenario *model.Scenario) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, scenario)
	}
	return nil
}
func (m *mockScenarioRepository) Update(ctx context.Context, scenario *model.Scenario) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, scenario)
	}
	return nil
}
func (m *mockScenarioRepository) Delete(ctx context.Context, orgID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, orgID, id)
	}
	return nil
}
func (m *mockScenarioRepository) SaveSnapshot(ctx context.Context, orgID, id string, snapshot []byte, at time.Time) error {
	if m.saveSnapshotFunc != nil {
		return m.saveSnapshotFunc(ctx, orgID, id, snapshot, at)
	}
	return nil
}

type mockOrgSettingsRepository struct {
	getFunc    func(ctx context.Context, orgID string) (*model.OrgSettings, error)
	upsertFunc func(ctx context.Context, settings *model.OrgSettings) error
}

func (m *mockOrgSettingsRepository) Get(ctx context.Context, orgID string) (*model.OrgSettings, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, orgID)
	}
	return &model.OrgSettings{OrgID: orgID}, nil
}
func (m *mockOrgSettingsRepository) Upsert(ctx context.Context, settings *model.OrgSettings) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, settings)
	}
	return nil
}
