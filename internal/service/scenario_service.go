package service

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/lagoslab/accessibility-backend-go/internal/cache"
	"github.com/lagoslab/accessibility-backend-go/internal/models"
	"github.com/lagoslab/accessibility-backend-go/internal/repository"
	"github.com/lagoslab/accessibility-backend-go/internal/skim"
)

const mapperKey = "node_zone_mapper"

// Scenario name constraint mirrors what the upload form accepts
var scenarioNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _.-]{0,63}$`)

// Validation errors surfaced to the upload endpoint
var (
	ErrInvalidScenarioName = errors.New("invalid scenario name")
	ErrUploadTooLarge      = errors.New("uploaded skim exceeds row limit")
	ErrNoMapping           = errors.New("node-to-zone mapping not loaded")
)

// ScenarioService handles skim intake: aggregating raw node-level tables
// into zone-level skims and managing the stored base/scenario matrices
type ScenarioService struct {
	skims    *repository.SkimRepository
	mappings *repository.MappingRepository

	skimCache   *cache.Cache[*models.Skim]
	mapperCache *cache.Cache[*skim.NodeZoneMapper]

	maxUploadRows int

	// Called after a skim is replaced or deleted so dependents can drop
	// derived results for it
	onSkimChanged []func(name string)
}

// OnSkimChanged registers a callback invoked when a skim changes
func (s *ScenarioService) OnSkimChanged(fn func(name string)) {
	s.onSkimChanged = append(s.onSkimChanged, fn)
}

func (s *ScenarioService) notifySkimChanged(name string) {
	for _, fn := range s.onSkimChanged {
		fn(name)
	}
}

// NewScenarioService creates a new scenario service
func NewScenarioService(skims *repository.SkimRepository, mappings *repository.MappingRepository, ttl time.Duration, maxUploadRows int) *ScenarioService {
	return &ScenarioService{
		skims:         skims,
		mappings:      mappings,
		skimCache:     cache.New[*models.Skim](ttl),
		mapperCache:   cache.New[*skim.NodeZoneMapper](ttl),
		maxUploadRows: maxUploadRows,
	}
}

// ImportMapping replaces the node-to-zone mapping table
func (s *ScenarioService) ImportMapping(pairs []skim.NodeZonePair) error {
	if len(pairs) == 0 {
		return fmt.Errorf("node-to-zone mapping is empty")
	}
	if err := s.mappings.ReplaceMapping(pairs); err != nil {
		return fmt.Errorf("failed to store node mapping: %w", err)
	}
	s.mapperCache.Invalidate(mapperKey)
	log.Printf("Imported node-to-zone mapping with %d pairs", len(pairs))
	return nil
}

// ImportBaseSkim aggregates and stores the base travel-time matrix
func (s *ScenarioService) ImportBaseSkim(raw []models.RawSkimEntry) (skim.DropStats, error) {
	return s.importSkim(repository.BaseSkimName, raw)
}

// UploadScenario aggregates and stores a named scenario skim for
// comparison against the base
func (s *ScenarioService) UploadScenario(name string, raw []models.RawSkimEntry) (skim.DropStats, error) {
	if name == repository.BaseSkimName || !scenarioNamePattern.MatchString(name) {
		return skim.DropStats{}, fmt.Errorf("%w: %q", ErrInvalidScenarioName, name)
	}
	return s.importSkim(name, raw)
}

func (s *ScenarioService) importSkim(name string, raw []models.RawSkimEntry) (skim.DropStats, error) {
	if len(raw) == 0 {
		return skim.DropStats{}, fmt.Errorf("skim %q has no rows", name)
	}
	if len(raw) > s.maxUploadRows {
		return skim.DropStats{}, fmt.Errorf("%w: %d rows (limit %d)", ErrUploadTooLarge, len(raw), s.maxUploadRows)
	}

	mapper, err := s.mapper()
	if err != nil {
		return skim.DropStats{}, err
	}

	aggregated, stats := skim.Aggregate(name, raw, mapper)
	if len(aggregated.Entries) == 0 {
		return stats, fmt.Errorf("skim %q has no usable rows after aggregation", name)
	}

	if err := s.skims.ReplaceSkim(aggregated, stats.Total()); err != nil {
		return stats, fmt.Errorf("failed to store skim %q: %w", name, err)
	}
	s.skimCache.Invalidate(cache.Key("skim", name))
	s.notifySkimChanged(name)
	log.Printf("Stored skim %q with %d zone pairs", name, len(aggregated.Entries))
	return stats, nil
}

// Skim returns a stored zone-level skim by name, cached
func (s *ScenarioService) Skim(name string) (*models.Skim, error) {
	return s.skimCache.GetOrCompute(cache.Key("skim", name), func() (*models.Skim, error) {
		return s.skims.GetSkim(name)
	})
}

// BaseSkim returns the base travel-time matrix
func (s *ScenarioService) BaseSkim() (*models.Skim, error) {
	return s.Skim(repository.BaseSkimName)
}

// List returns metadata for stored scenarios
func (s *ScenarioService) List() ([]repository.ScenarioInfo, error) {
	return s.skims.ListScenarios()
}

// Delete removes a scenario skim
func (s *ScenarioService) Delete(name string) error {
	if err := s.skims.DeleteScenario(name); err != nil {
		return err
	}
	s.skimCache.Invalidate(cache.Key("skim", name))
	s.notifySkimChanged(name)
	return nil
}

// mapper returns the cached node-to-zone mapper
func (s *ScenarioService) mapper() (*skim.NodeZoneMapper, error) {
	return s.mapperCache.GetOrCompute(mapperKey, func() (*skim.NodeZoneMapper, error) {
		pairs, err := s.mappings.GetMapping()
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return nil, ErrNoMapping
		}
		return skim.NewNodeZoneMapper(pairs), nil
	})
}
