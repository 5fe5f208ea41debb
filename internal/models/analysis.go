package models

// AccessibilityRequest holds parameters for one accessibility run
type AccessibilityRequest struct {
	TimeThreshold int    `json:"time_threshold" binding:"required,min=1"`
	Attribute     string `json:"attribute" binding:"required"`
	View          string `json:"view"`
	ScenarioName  string `json:"scenario_name"`
}

// AccessibilityRow is the derived record for one zone. AccessA is always
// present; scenario fields are nil when no scenario skim is loaded.
type AccessibilityRow struct {
	ZoneID        int32    `json:"zone_id"`
	AccessA       float64  `json:"access_A"`
	AccessAPct    float64  `json:"access_A_pct"`
	AccessAPctFmt string   `json:"access_A_pct_fmt"`
	AccessB       *float64 `json:"access_B,omitempty"`
	AccessBPct    *float64 `json:"access_B_pct,omitempty"`
	AccessBPctFmt string   `json:"access_B_pct_fmt,omitempty"`
	Delta         *float64 `json:"delta,omitempty"`
	Color         string   `json:"color"`
	Label         string   `json:"label"`
}

// AccessibilityResult is the full derived view for the rendering client
type AccessibilityResult struct {
	Rows        []AccessibilityRow `json:"rows"`
	ColorColumn string             `json:"color_column"`
	Bins        []float64          `json:"bins"`
	Colors      []string           `json:"colors"`
}

// TimeBandRequest holds parameters for one time-band run. OriginZone
// switches from banded counts to per-origin travel-time coloring.
type TimeBandRequest struct {
	TimeBand     int    `json:"time_band" binding:"required,min=1"`
	View         string `json:"view"`
	ScenarioName string `json:"scenario_name"`
	OriginZone   *int32 `json:"origin_zone,omitempty"`
}

// TimeBandRow is the derived record for one origin zone. Bands maps
// column names like "zones_0_15" to reachable-destination counts.
type TimeBandRow struct {
	ZoneID int32          `json:"zone_id"`
	Bands  map[string]int `json:"bands"`
	Total  int            `json:"total_accessible"`
	Color  string         `json:"color"`
	Label  string         `json:"label"`
}

// LegendItem is one swatch in the rendering client's legend
type LegendItem struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

// TimeBandResult is the full derived time-band view
type TimeBandResult struct {
	Rows    []TimeBandRow `json:"rows"`
	Columns []string      `json:"columns"`
	Bins    []float64     `json:"bins"`
	Colors  []string      `json:"colors"`
	Legend  []LegendItem  `json:"legend"`
}
