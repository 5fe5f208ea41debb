package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/lagoslab/accessibility-backend-go/internal/access"
	"github.com/lagoslab/accessibility-backend-go/internal/cache"
	"github.com/lagoslab/accessibility-backend-go/internal/classify"
	"github.com/lagoslab/accessibility-backend-go/internal/models"
)

// AnalysisService runs accessibility and time-band computations over the
// current zone/skim snapshot. Each request recomputes synchronously from
// one consistent snapshot; results are memoized by input parameters.
type AnalysisService struct {
	zones     *ZoneService
	scenarios *ScenarioService

	accessCache *cache.Cache[map[int32]float64]
	scheme      map[string]string
}

// NewAnalysisService creates a new analysis service. The accessibility
// memo is invalidated whenever a skim is replaced or deleted.
func NewAnalysisService(zones *ZoneService, scenarios *ScenarioService, ttl time.Duration, scheme map[string]string) *AnalysisService {
	s := &AnalysisService{
		zones:       zones,
		scenarios:   scenarios,
		accessCache: cache.New[map[int32]float64](ttl),
		scheme:      scheme,
	}
	scenarios.OnSkimChanged(func(name string) {
		s.accessCache.InvalidatePrefix(cache.Key("access", name))
	})
	return s
}

// Accessibility computes per-zone accessible values for the requested
// view, with percentage-of-total columns and distribution-based styling
func (s *AnalysisService) Accessibility(req models.AccessibilityRequest) (*models.AccessibilityResult, error) {
	table, err := s.zones.ZoneTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load zone table: %w", err)
	}
	view := models.ParseView(req.View, req.ScenarioName)

	base, err := s.scenarios.BaseSkim()
	if err != nil {
		return nil, fmt.Errorf("failed to load base skim: %w", err)
	}
	rawA, err := s.cachedAccess(base, table, req.TimeThreshold, req.Attribute)
	if err != nil {
		return nil, err
	}
	accessA := access.FillMissingZones(rawA, table)
	total := table.AttributeTotal(req.Attribute)

	var accessB, delta map[int32]float64
	if view.NeedsScenario() {
		scenario, err := s.scenarios.Skim(view.ScenarioName)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario %q: %w", view.ScenarioName, err)
		}
		rawB, err := s.cachedAccess(scenario, table, req.TimeThreshold, req.Attribute)
		if err != nil {
			return nil, err
		}
		accessB = access.FillMissingZones(rawB, table)
		delta = make(map[int32]float64, len(accessB))
		for id, b := range accessB {
			delta[id] = b - accessA[id]
		}
	}

	var colorColumn string
	var colorValues map[int32]float64
	switch view.Kind {
	case models.ViewBase:
		colorColumn, colorValues = "access_A", accessA
	case models.ViewScenario:
		colorColumn, colorValues = "access_B", accessB
	case models.ViewDifference:
		colorColumn, colorValues = "delta", delta
	default:
		colorColumn, colorValues = "access_A", accessA
	}

	styling := s.safeClassify(view.String(), func() classify.Result {
		return classify.ByDistribution(table.IDs(), colorValues)
	})

	rows := make([]models.AccessibilityRow, 0, table.Len())
	for _, id := range sortedIDs(table.IDs()) {
		row := models.AccessibilityRow{
			ZoneID:  id,
			AccessA: accessA[id],
			Color:   styling.Color[id],
			Label:   styling.Label[id],
		}
		row.AccessAPct, row.AccessAPctFmt = access.PercentOfTotal(accessA[id], total)
		if accessB != nil {
			b := accessB[id]
			d := delta[id]
			pct, pctFmt := access.PercentOfTotal(b, total)
			row.AccessB = &b
			row.AccessBPct = &pct
			row.AccessBPctFmt = pctFmt
			row.Delta = &d
		}
		rows = append(rows, row)
	}

	return &models.AccessibilityResult{
		Rows:        rows,
		ColorColumn: colorColumn,
		Bins:        styling.Bins,
		Colors:      styling.Colors,
	}, nil
}

// TimeBands computes banded reachable-zone counts, or dynamic per-origin
// travel-time styling when an origin zone is selected
func (s *AnalysisService) TimeBands(req models.TimeBandRequest) (*models.TimeBandResult, error) {
	table, err := s.zones.ZoneTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load zone table: %w", err)
	}
	view := models.ParseView(req.View, req.ScenarioName)

	var sk *models.Skim
	switch view.Kind {
	case models.ViewScenario:
		if sk, err = s.scenarios.Skim(view.ScenarioName); err != nil {
			return nil, fmt.Errorf("failed to load scenario %q: %w", view.ScenarioName, err)
		}
	case models.ViewBase, models.ViewDifference:
		// Banded counts have no difference rendition; both fall back to
		// the base skim
		if sk, err = s.scenarios.BaseSkim(); err != nil {
			return nil, fmt.Errorf("failed to load base skim: %w", err)
		}
	}

	if req.OriginZone != nil {
		return s.originTimeBands(table, sk, *req.OriginZone, req.TimeBand)
	}

	bands := access.TimeBands(sk, req.TimeBand)
	totals := access.TotalAccessible(bands, table)
	styling := s.safeClassify("time_bands", func() classify.Result {
		return classify.ByTimeMappingScheme(table.IDs(), totals, s.scheme)
	})

	columns := lo.Map(bands, func(b access.Band, _ int) string { return b.Column })
	rows := make([]models.TimeBandRow, 0, table.Len())
	for _, id := range sortedIDs(table.IDs()) {
		counts := make(map[string]int, len(bands))
		for _, b := range bands {
			counts[b.Column] = b.Counts[id]
		}
		rows = append(rows, models.TimeBandRow{
			ZoneID: id,
			Bands:  counts,
			Total:  int(totals[id]),
			Color:  styling.Color[id],
			Label:  styling.Label[id],
		})
	}

	return &models.TimeBandResult{
		Rows:    rows,
		Columns: columns,
		Bins:    styling.Bins,
		Colors:  styling.Colors,
		Legend:  classify.Legend(styling),
	}, nil
}

// originTimeBands styles every zone by its travel time from one origin
func (s *AnalysisService) originTimeBands(table *models.ZoneTable, sk *models.Skim, origin int32, bandWidth int) (*models.TimeBandResult, error) {
	if !table.Has(origin) {
		return nil, fmt.Errorf("unknown origin zone %d", origin)
	}

	times := sk.TimesFromOrigin(origin)
	styling := s.safeClassify("origin_travel_time", func() classify.Result {
		return classify.ByOriginTravelTime(table.IDs(), times, bandWidth, s.scheme)
	})

	rows := make([]models.TimeBandRow, 0, table.Len())
	for _, id := range sortedIDs(table.IDs()) {
		rows = append(rows, models.TimeBandRow{
			ZoneID: id,
			Bands:  map[string]int{},
			Color:  styling.Color[id],
			Label:  styling.Label[id],
		})
	}

	return &models.TimeBandResult{
		Rows:   rows,
		Bins:   styling.Bins,
		Colors: styling.Colors,
		Legend: classify.Legend(styling),
	}, nil
}

// cachedAccess memoizes raw accessibility results by skim, threshold and
// attribute. Cached maps are read-only; FillMissingZones copies.
func (s *AnalysisService) cachedAccess(sk *models.Skim, table *models.ZoneTable, timeLimit int, attribute string) (map[int32]float64, error) {
	key := cache.Key("access", sk.Name, timeLimit, attribute)
	return s.accessCache.GetOrCompute(key, func() (map[int32]float64, error) {
		return access.Calculate(sk, table, timeLimit, attribute)
	})
}

// safeClassify makes styling failures non-fatal: the analysis degrades
// to unstyled zones instead of failing the whole request
func (s *AnalysisService) safeClassify(context string, fn func() classify.Result) (res classify.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Classification failed for %s, returning unstyled zones: %v", context, r)
			res = classify.Result{Color: map[int32]string{}, Label: map[int32]string{}}
		}
	}()
	return fn()
}

func sortedIDs(ids []int32) []int32 {
	sorted := make([]int32, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}
