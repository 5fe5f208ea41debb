package service

import (
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagoslab/accessibility-backend-go/internal/access"
	"github.com/lagoslab/accessibility-backend-go/internal/classify"
	"github.com/lagoslab/accessibility-backend-go/internal/database"
	"github.com/lagoslab/accessibility-backend-go/internal/models"
	"github.com/lagoslab/accessibility-backend-go/internal/repository"
	"github.com/lagoslab/accessibility-backend-go/internal/skim"
)

var (
	zoneService     *ZoneService
	scenarioService *ScenarioService
	analysisService *AnalysisService
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	if err := database.Init(database.Config{Path: filepath.Join(dir, "test.db")}); err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	ttl := time.Hour
	zoneService = NewZoneService(repository.NewZoneRepository(db), ttl)
	scenarioService = NewScenarioService(
		repository.NewSkimRepository(db),
		repository.NewMappingRepository(db),
		ttl, 1000)
	analysisService = NewAnalysisService(zoneService, scenarioService, ttl, classify.DefaultTimeMappingScheme)

	os.Exit(m.Run())
}

func seedData(t *testing.T) {
	t.Helper()

	require.NoError(t, zoneService.ImportZones([]models.Zone{
		{ZoneID: 1, Name: "Ikeja", Attributes: map[string]float64{"jobs": 100}},
		{ZoneID: 2, Name: "Yaba", Attributes: map[string]float64{"jobs": 200}},
		{ZoneID: 3, Name: "Lekki", Attributes: map[string]float64{"jobs": 300}},
	}))

	require.NoError(t, scenarioService.ImportMapping([]skim.NodeZonePair{
		{NodeID: 101, ZoneID: 1},
		{NodeID: 102, ZoneID: 2},
		{NodeID: 103, ZoneID: 3},
	}))

	_, err := scenarioService.ImportBaseSkim([]models.RawSkimEntry{
		{OriginNode: 101, DestinationNode: 102, TravelTime: "10"},
		{OriginNode: 101, DestinationNode: 103, TravelTime: "20"},
		{OriginNode: 102, DestinationNode: 101, TravelTime: "10"},
	})
	require.NoError(t, err)
}

func rowByZone(t *testing.T, rows []models.AccessibilityRow, id int32) models.AccessibilityRow {
	t.Helper()
	for _, r := range rows {
		if r.ZoneID == id {
			return r
		}
	}
	t.Fatalf("no row for zone %d", id)
	return models.AccessibilityRow{}
}

func TestAccessibilityWorkflow(t *testing.T) {
	seedData(t)

	t.Run("base view", func(t *testing.T) {
		result, err := analysisService.Accessibility(models.AccessibilityRequest{
			TimeThreshold: 15,
			Attribute:     "jobs",
		})
		require.NoError(t, err)

		assert.Equal(t, "access_A", result.ColorColumn)
		require.Len(t, result.Rows, 3)

		r1 := rowByZone(t, result.Rows, 1)
		assert.Equal(t, 200.0, r1.AccessA)
		assert.Equal(t, 33.0, r1.AccessAPct)
		assert.Equal(t, "33%", r1.AccessAPctFmt)
		assert.Nil(t, r1.AccessB)
		assert.Nil(t, r1.Delta)

		r2 := rowByZone(t, result.Rows, 2)
		assert.Equal(t, 100.0, r2.AccessA)
		assert.Equal(t, "17%", r2.AccessAPctFmt)

		// Zone 3 reaches nothing within 15 minutes and is zero-filled,
		// styled No Access
		r3 := rowByZone(t, result.Rows, 3)
		assert.Equal(t, 0.0, r3.AccessA)
		assert.Equal(t, "0%", r3.AccessAPctFmt)
		assert.Equal(t, classify.NoAccessColor, r3.Color)
		assert.Equal(t, classify.NoAccessLabel, r3.Label)
	})

	t.Run("scenario and difference views", func(t *testing.T) {
		_, err := scenarioService.UploadScenario("brt", []models.RawSkimEntry{
			{OriginNode: 101, DestinationNode: 102, TravelTime: "10"},
			{OriginNode: 101, DestinationNode: 103, TravelTime: "12"},
			{OriginNode: 102, DestinationNode: 101, TravelTime: "10"},
		})
		require.NoError(t, err)

		result, err := analysisService.Accessibility(models.AccessibilityRequest{
			TimeThreshold: 15,
			Attribute:     "jobs",
			View:          "scenario",
			ScenarioName:  "brt",
		})
		require.NoError(t, err)
		assert.Equal(t, "access_B", result.ColorColumn)

		r1 := rowByZone(t, result.Rows, 1)
		require.NotNil(t, r1.AccessB)
		assert.Equal(t, 500.0, *r1.AccessB)
		require.NotNil(t, r1.Delta)
		assert.Equal(t, 300.0, *r1.Delta)
		assert.Equal(t, "83%", r1.AccessBPctFmt)

		diff, err := analysisService.Accessibility(models.AccessibilityRequest{
			TimeThreshold: 15,
			Attribute:     "jobs",
			View:          "difference",
			ScenarioName:  "brt",
		})
		require.NoError(t, err)
		assert.Equal(t, "delta", diff.ColorColumn)

		r2 := rowByZone(t, diff.Rows, 2)
		require.NotNil(t, r2.Delta)
		assert.Equal(t, 0.0, *r2.Delta)
	})

	t.Run("reupload invalidates cached results", func(t *testing.T) {
		_, err := scenarioService.UploadScenario("brt", []models.RawSkimEntry{
			{OriginNode: 101, DestinationNode: 102, TravelTime: "30"},
			{OriginNode: 101, DestinationNode: 103, TravelTime: "30"},
		})
		require.NoError(t, err)

		result, err := analysisService.Accessibility(models.AccessibilityRequest{
			TimeThreshold: 15,
			Attribute:     "jobs",
			View:          "scenario",
			ScenarioName:  "brt",
		})
		require.NoError(t, err)

		r1 := rowByZone(t, result.Rows, 1)
		require.NotNil(t, r1.AccessB)
		assert.Equal(t, 0.0, *r1.AccessB)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := analysisService.Accessibility(models.AccessibilityRequest{
			TimeThreshold: 15,
			Attribute:     "nonexistent",
		})
		assert.ErrorIs(t, err, access.ErrUnknownAttribute)
	})

	t.Run("missing scenario", func(t *testing.T) {
		_, err := analysisService.Accessibility(models.AccessibilityRequest{
			TimeThreshold: 15,
			Attribute:     "jobs",
			View:          "scenario",
			ScenarioName:  "never-uploaded",
		})
		assert.ErrorIs(t, err, repository.ErrSkimNotFound)
	})

	t.Run("delete scenario", func(t *testing.T) {
		require.NoError(t, scenarioService.Delete("brt"))

		_, err := analysisService.Accessibility(models.AccessibilityRequest{
			TimeThreshold: 15,
			Attribute:     "jobs",
			View:          "scenario",
			ScenarioName:  "brt",
		})
		assert.ErrorIs(t, err, repository.ErrSkimNotFound)
	})
}

func TestTimeBandsWorkflow(t *testing.T) {
	seedData(t)

	t.Run("banded counts", func(t *testing.T) {
		result, err := analysisService.TimeBands(models.TimeBandRequest{TimeBand: 15})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"zones_0_15", "zones_15_30", "zones_30_45", "zones_45_60", "zones_60_75",
		}, result.Columns)
		require.Len(t, result.Rows, 3)

		var r1 models.TimeBandRow
		for _, r := range result.Rows {
			if r.ZoneID == 1 {
				r1 = r
			}
		}
		assert.Equal(t, 1, r1.Bands["zones_0_15"])
		assert.Equal(t, 1, r1.Bands["zones_15_30"])
		assert.Equal(t, 0, r1.Bands["zones_30_45"])
		assert.Equal(t, 2, r1.Total)
	})

	t.Run("origin travel times", func(t *testing.T) {
		origin := int32(1)
		result, err := analysisService.TimeBands(models.TimeBandRequest{
			TimeBand:   15,
			OriginZone: &origin,
		})
		require.NoError(t, err)
		require.Len(t, result.Rows, 3)
		assert.NotEmpty(t, result.Legend)

		byZone := make(map[int32]models.TimeBandRow)
		for _, r := range result.Rows {
			byZone[r.ZoneID] = r
		}
		assert.Equal(t, "0-15 min", byZone[2].Label)
		assert.Equal(t, "15+ min", byZone[3].Label)
		// The origin has no entry to itself in this skim
		assert.Equal(t, classify.NoDataLabel, byZone[1].Label)
	})

	t.Run("unknown origin", func(t *testing.T) {
		origin := int32(999)
		_, err := analysisService.TimeBands(models.TimeBandRequest{
			TimeBand:   15,
			OriginZone: &origin,
		})
		assert.Error(t, err)
	})
}

func TestScenarioValidation(t *testing.T) {
	seedData(t)

	rows := []models.RawSkimEntry{{OriginNode: 101, DestinationNode: 102, TravelTime: "5"}}

	_, err := scenarioService.UploadScenario("base", rows)
	assert.ErrorIs(t, err, ErrInvalidScenarioName)

	_, err = scenarioService.UploadScenario("bad/name", rows)
	assert.ErrorIs(t, err, ErrInvalidScenarioName)

	_, err = scenarioService.UploadScenario("", rows)
	assert.ErrorIs(t, err, ErrInvalidScenarioName)

	big := make([]models.RawSkimEntry, 1001)
	for i := range big {
		big[i] = models.RawSkimEntry{OriginNode: 101, DestinationNode: 102, TravelTime: "5"}
	}
	_, err = scenarioService.UploadScenario("too-big", big)
	assert.ErrorIs(t, err, ErrUploadTooLarge)

	assert.Error(t, scenarioService.Delete("base"))
}

func TestUploadDropStats(t *testing.T) {
	seedData(t)

	stats, err := scenarioService.UploadScenario("with-drops", []models.RawSkimEntry{
		{OriginNode: 101, DestinationNode: 102, TravelTime: "5"},
		{OriginNode: 101, DestinationNode: 103, TravelTime: models.UnreachableSentinel},
		{OriginNode: 999, DestinationNode: 102, TravelTime: "5"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Unreachable)
	assert.Equal(t, 1, stats.UnmappedOrigin)

	infos, err := scenarioService.List()
	require.NoError(t, err)

	found := false
	for _, info := range infos {
		if info.Name == "with-drops" {
			found = true
			assert.Equal(t, 2, info.DroppedRows)
			assert.Equal(t, 1, info.EntryCount)
		}
	}
	assert.True(t, found)

	require.NoError(t, scenarioService.Delete("with-drops"))
}
