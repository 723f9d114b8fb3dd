package planning

import (
	"errors"
	"math"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// ErrNegativeHours is returned when an estimate is derived from negative hours.
var ErrNegativeHours = errors.New("development hours must be >= 0")

// PhaseHours is the per-phase breakdown derived from a development estimate.
type PhaseHours struct {
	TechnicalDesign float64 `json:"technical_design"`
	Development     float64 `json:"development"`
	Testing         float64 `json:"testing"`
	Deployment      float64 `json:"deployment"`
	Support         float64 `json:"support"`
}

// Total sums every phase.
func (p PhaseHours) Total() float64 {
	return p.TechnicalDesign + p.Development + p.Testing + p.Deployment + p.Support
}

// TeamEstimate converts the breakdown into an estimate row for teamID.
func (p PhaseHours) TeamEstimate(teamID string) model.TeamEstimate {
	return model.TeamEstimate{
		TeamID:      teamID,
		Design:      p.TechnicalDesign,
		Development: p.Development,
		Testing:     p.Testing,
		Deployment:  p.Deployment,
		PostDeploy:  p.Support,
	}
}

// EstimatePhases derives design, testing, deployment and support hours from a
// development estimate using the configured ratios.
func EstimatePhases(devHours float64, cfg Config) (PhaseHours, error) {
	if devHours < 0 || math.IsNaN(devHours) {
		return PhaseHours{}, ErrNegativeHours
	}
	return PhaseHours{
		TechnicalDesign: devHours * clampNonNegative(cfg.DesignRatio),
		Development:     devHours,
		Testing:         devHours * clampNonNegative(cfg.TestingRatio),
		Deployment:      devHours * clampNonNegative(cfg.DeploymentRatio),
		Support:         devHours * clampNonNegative(cfg.SupportRatio),
	}, nil
}

// TestingModel classifies how much testing a portfolio item carries relative
// to its development effort.
type TestingModel string

const (
	TestingNone      TestingModel = "none"
	TestingEmbedded  TestingModel = "embedded"
	TestingDedicated TestingModel = "dedicated"
	TestingIntensive TestingModel = "intensive"
)

const (
	embeddedTestingRatio  = 0.30
	dedicatedTestingRatio = 0.60
)

// Aggregate is the cost and duration roll-up of a set of estimates.
type Aggregate struct {
	PhaseHours          PhaseHours   `json:"phase_hours"`
	TotalHours          float64      `json:"total_hours"`
	TotalCost           float64      `json:"total_cost"`
	TotalCapex          float64      `json:"total_capex"`
	TotalOpex           float64      `json:"total_opex"`
	EstimatedWeeks      int          `json:"estimated_weeks"`
	RecommendedTeamSize int          `json:"recommended_team_size"`
	TestingModel        TestingModel `json:"testing_model"`
}

// AggregateEstimates rolls up estimates into cost, capex/opex and duration.
// Negative phase hours are treated as zero.
func AggregateEstimates(estimates []model.TeamEstimate, cfg Config) Aggregate {
	cfg = cfg.WithDefaults()

	var agg Aggregate
	capexHours, opexHours := 0.0, 0.0
	for i := range estimates {
		e := &estimates[i]
		for _, phase := range model.Phases {
			h := clampNonNegative(e.Hours(phase))
			if phase.Capitalizable() {
				capexHours += h
			} else {
				opexHours += h
			}
		}
		agg.PhaseHours.TechnicalDesign += clampNonNegative(e.Design)
		agg.PhaseHours.Development += clampNonNegative(e.Development)
		agg.PhaseHours.Testing += clampNonNegative(e.Testing)
		agg.PhaseHours.Deployment += clampNonNegative(e.Deployment)
		agg.PhaseHours.Support += clampNonNegative(e.PostDeploy)
	}

	agg.TotalHours = capexHours + opexHours
	agg.TotalCost = agg.TotalHours * cfg.BlendedRate
	agg.TotalCapex = capexHours * cfg.BlendedRate
	agg.TotalOpex = opexHours * cfg.BlendedRate
	agg.TestingModel = testingModel(agg.PhaseHours)

	if agg.TotalHours <= 0 {
		return agg
	}

	size := int(math.Ceil(agg.TotalHours / (cfg.HoursPerWeek * float64(cfg.TargetDurationWeeks))))
	agg.RecommendedTeamSize = min(max(size, 1), cfg.MaxTeamSize)

	velocity := float64(agg.RecommendedTeamSize) * cfg.HoursPerWeek * cfg.VelocityFactor
	agg.EstimatedWeeks = int(math.Ceil(agg.TotalHours / velocity))
	return agg
}

func testingModel(p PhaseHours) TestingModel {
	if p.Development <= 0 {
		return TestingNone
	}
	ratio := p.Testing / p.Development
	switch {
	case ratio < embeddedTestingRatio:
		return TestingEmbedded
	case ratio <= dedicatedTestingRatio:
		return TestingDedicated
	default:
		return TestingIntensive
	}
}
