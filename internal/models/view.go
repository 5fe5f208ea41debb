package models

import "fmt"

// ViewKind selects which skim's results drive the map coloring
type ViewKind int

// View kinds
const (
	ViewBase ViewKind = iota
	ViewScenario
	ViewDifference
)

// AnalysisView is a tagged selection of base, named scenario, or
// base-vs-scenario difference
type AnalysisView struct {
	Kind         ViewKind `json:"kind"`
	ScenarioName string   `json:"scenario_name,omitempty"`
}

// BaseView selects the base skim
func BaseView() AnalysisView {
	return AnalysisView{Kind: ViewBase}
}

// ScenarioView selects a named scenario skim
func ScenarioView(name string) AnalysisView {
	return AnalysisView{Kind: ViewScenario, ScenarioName: name}
}

// DifferenceView selects the scenario-minus-base delta
func DifferenceView(name string) AnalysisView {
	return AnalysisView{Kind: ViewDifference, ScenarioName: name}
}

// ParseView maps a request string to a view. "base" selects the base
// skim, "difference" the delta; anything else names a scenario.
func ParseView(s, scenarioName string) AnalysisView {
	switch s {
	case "", "base":
		return BaseView()
	case "difference":
		return DifferenceView(scenarioName)
	case "scenario":
		return ScenarioView(scenarioName)
	default:
		return ScenarioView(s)
	}
}

// NeedsScenario reports whether the view requires a scenario skim
func (v AnalysisView) NeedsScenario() bool {
	switch v.Kind {
	case ViewBase:
		return false
	case ViewScenario, ViewDifference:
		return true
	}
	return false
}

// String implements fmt.Stringer
func (v AnalysisView) String() string {
	switch v.Kind {
	case ViewBase:
		return "base"
	case ViewScenario:
		return fmt.Sprintf("scenario(%s)", v.ScenarioName)
	case ViewDifference:
		return fmt.Sprintf("difference(%s)", v.ScenarioName)
	}
	return "unknown"
}
