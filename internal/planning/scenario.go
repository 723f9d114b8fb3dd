package planning

import (
	"maps"
	"slices"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// Overlay is the scenario-scoped part of an engine input.
type Overlay struct {
	Contractors       []model.Contractor
	PriorityOverrides map[string]int
}

// OverlayFromScenario extracts the overlay carried by a scenario.
func OverlayFromScenario(s *model.Scenario) Overlay {
	return Overlay{
		Contractors:       slices.Clone(s.Contractors),
		PriorityOverrides: s.OverrideMap(),
	}
}

// WithOverlay returns a copy of in with the overlay applied. Contractors are
// appended to any already present and overlay priorities win over existing
// overrides. Neither in nor o is modified.
func (in Input) WithOverlay(o Overlay) Input {
	out := in
	out.Contractors = append(slices.Clone(in.Contractors), o.Contractors...)
	out.PriorityOverrides = make(map[string]int, len(in.PriorityOverrides)+len(o.PriorityOverrides))
	maps.Copy(out.PriorityOverrides, in.PriorityOverrides)
	maps.Copy(out.PriorityOverrides, o.PriorityOverrides)
	return out
}

// ApplyScenario overlays a stored scenario on the baseline input.
func ApplyScenario(baseline Input, s *model.Scenario) Input {
	return baseline.WithOverlay(OverlayFromScenario(s))
}
