package main

import (
	"log"

	"github.com/lagoslab/accessibility-backend-go/internal/api"
	"github.com/lagoslab/accessibility-backend-go/internal/classify"
	"github.com/lagoslab/accessibility-backend-go/internal/config"
	"github.com/lagoslab/accessibility-backend-go/internal/database"
	"github.com/lagoslab/accessibility-backend-go/internal/repository"
	"github.com/lagoslab/accessibility-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	zoneRepo := repository.NewZoneRepository(db)
	mappingRepo := repository.NewMappingRepository(db)
	skimRepo := repository.NewSkimRepository(db)

	zoneService := service.NewZoneService(zoneRepo, cfg.CacheTTL)
	scenarioService := service.NewScenarioService(skimRepo, mappingRepo, cfg.CacheTTL, cfg.MaxUploadRows)
	scheme := classify.EnsureTimeMappingKeys(cfg.TimeMappingScheme)
	analysisService := service.NewAnalysisService(zoneService, scenarioService, cfg.CacheTTL, scheme)

	router := api.SetupRouter(cfg, zoneService, scenarioService, analysisService)

	log.Printf("Server starting on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
