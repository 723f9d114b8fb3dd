package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
	"github.com/pschlie1/it-capacity-planner-sub001/pkg/auth"
)

// orgRequest は組織IDを context にセットしたリクエストを返す
func orgRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	return req.WithContext(auth.WithOrgID(req.Context(), "org-1"))
}

// serve は pattern を登録した mux 経由でリクエストを処理する（PathValue を有効にするため）
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// Mock TeamService
// ---------------------------------------------------------------------------

type mockTeamService struct {
	listFunc    func(ctx context.Context, orgID string) ([]*model.Team, error)
	getByIDFunc func(ctx context.Context, orgID, id string) (*model.Team, error)
	createFunc  func(ctx context.Context, team *model.Team) error
	updateFunc  func(ctx context.Context, team *model.Team) error
	deleteFunc  func(ctx context.Context, orgID, id string) error
}

func (m *mockTeamService) List(ctx context.Context, orgID string) ([]*model.Team, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockTeamService) GetByID(ctx context.Context, orgID, id string) (*model.Team, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, orgID, id)
	}
	return nil, nil
}
func (m *mockTeamService) Create(ctx context.Context, team *model.Team) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, team)
	}
	return nil
}
func (m *mockTeamService) Update(ctx context.Context, team *model.Team) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, team)
	}
	return nil
}
func (m *mockTeamService) Delete(ctx context.Context, orgID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, orgID, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock ProjectService / EstimateService
// ---------------------------------------------------------------------------

type mockProjectService struct {
	listFunc             func(ctx context.Context, orgID string) ([]*model.Project, error)
	getByIDFunc          func(ctx context.Context, orgID, id string) (*model.Project, error)
	createFunc           func(ctx context.Context, project *model.Project) error
	updateFunc           func(ctx context.Context, project *model.Project) error
	deleteFunc           func(ctx context.Context, orgID, id string) error
	replaceEstimatesFunc func(ctx context.Context, orgID, projectID string, estimates []model.TeamEstimate) error
}

func (m *mockProjectService) List(ctx context.Context, orgID string) ([]*model.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockProjectService) GetByID(ctx context.Context, orgID, id string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, orgID, id)
	}
	return nil, nil
}
func (m *mockProjectService) Create(ctx context.Context, project *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	return nil
}
func (m *mockProjectService) Update(ctx context.Context, project *model.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, project)
	}
	return nil
}
func (m *mockProjectService) Delete(ctx context.Context, orgID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, orgID, id)
	}
	return nil
}
func (m *mockProjectService) ReplaceEstimates(ctx context.Context, orgID, projectID string, estimates []model.TeamEstimate) error {
	if m.replaceEstimatesFunc != nil {
		return m.replaceEstimatesFunc(ctx, orgID, projectID, estimates)
	}
	return nil
}

type mockEstimateService struct {
	phasesFunc  func(ctx context.Context, orgID string, devHours float64) (planning.PhaseHours, error)
	summaryFunc func(ctx context.Context, orgID, projectID string) (*planning.Aggregate, error)
}

func (m *mockEstimateService) Phases(ctx context.Context, orgID string, devHours float64) (planning.PhaseHours, error) {
	if m.phasesFunc != nil {
		return m.phasesFunc(ctx, orgID, devHours)
	}
	return planning.PhaseHours{}, nil
}
func (m *mockEstimateService) Summary(ctx context.Context, orgID, projectID string) (*planning.Aggregate, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, orgID, projectID)
	}
	return &planning.Aggregate{}, nil
}

// ---------------------------------------------------------------------------
// Mock CalendarService
// ---------------------------------------------------------------------------

type mockCalendarService struct {
	listHolidaysFunc   func(ctx context.Context, orgID string) ([]*model.Holiday, error)
	createHolidayFunc  func(ctx context.Context, holiday *model.Holiday) error
	deleteHolidayFunc  func(ctx context.Context, orgID, id string) error
	listResourcesFunc  func(ctx context.Context, orgID string) ([]*model.Resource, error)
	createResourceFunc func(ctx context.Context, resource *model.Resource) error
	deleteResourceFunc func(ctx context.Context, orgID, id string) error
	listPTOFunc        func(ctx context.Context, orgID, resourceID string) ([]*model.PTOEntry, error)
	createPTOFunc      func(ctx context.Context, orgID string, entry *model.PTOEntry) error
	deletePTOFunc      func(ctx context.Context, orgID, id string) error
}

func (m *mockCalendarService) ListHolidays(ctx context.Context, orgID string) ([]*model.Holiday, error) {
	if m.listHolidaysFunc != nil {
		return m.listHolidaysFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockCalendarService) CreateHoliday(ctx context.Context, holiday *model.Holiday) error {
	if m.createHolidayFunc != nil {
		return m.createHolidayFunc(ctx, holiday)
	}
	return nil
}
func (m *mockCalendarService) DeleteHoliday(ctx context.Context, orgID, id string) error {
	if m.deleteHolidayFunc != nil {
		return m.deleteHolidayFunc(ctx, orgID, id)
	}
	return nil
}
func (m *mockCalendarService) ListResources(ctx context.Context, orgID string) ([]*model.Resource, error) {
	if m.listResourcesFunc != nil {
		return m.listResourcesFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockCalendarService) CreateResource(ctx context.Context, resource *model.Resource) error {
	if m.createResourceFunc != nil {
		return m.createResourceFunc(ctx, resource)
	}
	return nil
}
func (m *mockCalendarService) DeleteResource(ctx context.Context, orgID, id string) error {
	if m.deleteResourceFunc != nil {
		return m.deleteResourceFunc(ctx, orgID, id)
	}
	return nil
}
func (m *mockCalendarService) ListPTO(ctx context.Context, orgID, resourceID string) ([]*model.PTOEntry, error) {
	if m.listPTOFunc != nil {
		return m.listPTOFunc(ctx, orgID, resourceID)
	}
	return nil, nil
}
func (m *mockCalendarService) CreatePTO(ctx context.Context, orgID string, entry *model.PTOEntry) error {
	if m.createPTOFunc != nil {
		return m.createPTOFunc(ctx, orgID, entry)
	}
	return nil
}
func (m *mockCalendarService) DeletePTO(ctx context.Context, orgID, id string) error {
	if m.deletePTOFunc != nil {
		return m.deletePTOFunc(ctx, orgID, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock ScenarioService
// ---------------------------------------------------------------------------

type mockScenarioService struct {
	listFunc    func(ctx context.Context, orgID string) ([]*model.Scenario, error)
	getByIDFunc func(ctx context.Context, orgID, id string) (*model.Scenario, error)
	createFunc  func(ctx context.Context, scenario *model.Scenario) error
	updateFunc  func(ctx context.Context, scenario *model.Scenario) error
	deleteFunc  func(ctx context.Context, orgID, id string) error
	cloneFunc   func(ctx context.Context, orgID, id, name string) (*model.Scenario, error)
}

func (m *mockScenarioService) List(ctx context.Context, orgID string) ([]*model.Scenario, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, orgID)
	}
	return nil, nil
}
func (m *mockScenarioService) GetByID(ctx context.Context, orgID, id string) (*model.Scenario, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, orgID, id)
	}
	return nil, nil
}
func (m *mockScenarioService) Create(ctx context.Context, scenario *model.Scenario) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, scenario)
	}
	return nil
}
func (m *mockScenarioService) Update(ctx context.Context, scenario *model.Scenario) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, scenario)
	}
	return nil
}
func (m *mockScenarioService) Delete(ctx context.Context, orgID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, orgID, id)
	}
	return nil
}
func (m *mockScenarioService) Clone(ctx context.Context, orgID, id, name string) (*model.Scenario, error) {
	if m.cloneFunc != nil {
		return m.cloneFunc(ctx, orgID, id, name)
	}
	return &model.Scenario{}, nil
}

// ---------------------------------------------------------------------------
// Mock AllocationService / SettingsService
// ---------------------------------------------------------------------------

type mockAllocationService struct {
	baselineFunc func(ctx context.Context, orgID string) (*planning.Result, error)
	scenarioFunc func(ctx context.Context, orgID, scenarioID string) (*planning.Result, error)
	compareFunc  func(ctx context.Context, orgID, scenarioID string) (*planning.Comparison, error)
	summaryFunc  func(ctx context.Context, orgID string) ([]planning.TeamSummary, error)
	spofFunc     func(ctx context.Context, orgID string) ([]planning.SkillHolder, error)
}

func (m *mockAllocationService) Baseline(ctx context.Context, orgID string) (*planning.Result, error) {
	if m.baselineFunc != nil {
		return m.baselineFunc(ctx, orgID)
	}
	return &planning.Result{RedLineIndex: -1}, nil
}
func (m *mockAllocationService) Scenario(ctx context.Context, orgID, scenarioID string) (*planning.Result, error) {
	if m.scenarioFunc != nil {
		return m.scenarioFunc(ctx, orgID, scenarioID)
	}
	return &planning.Result{RedLineIndex: -1}, nil
}
func (m *mockAllocationService) Compare(ctx context.Context, orgID, scenarioID string) (*planning.Comparison, error) {
	if m.compareFunc != nil {
		return m.compareFunc(ctx, orgID, scenarioID)
	}
	return &planning.Comparison{}, nil
}
func (m *mockAllocationService) CapacitySummary(ctx context.Context, orgID string) ([]planning.TeamSummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, orgID)
	}
	return []planning.TeamSummary{}, nil
}
func (m *mockAllocationService) SinglePointsOfFailure(ctx context.Context, orgID string) ([]planning.SkillHolder, error) {
	if m.spofFunc != nil {
		return m.spofFunc(ctx, orgID)
	}
	return []planning.SkillHolder{}, nil
}

type mockSettingsService struct {
	getFunc    func(ctx context.Context, orgID string) (*model.OrgSettings, error)
	updateFunc func(ctx context.Context, settings *model.OrgSettings) error
}

func (m *mockSettingsService) Get(ctx context.Context, orgID string) (*model.OrgSettings, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, orgID)
	}
	return &model.OrgSettings{OrgID: orgID}, nil
}
func (m *mockSettingsService) Update(ctx context.Context, settings *model.OrgSettings) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, settings)
	}
	return nil
}
