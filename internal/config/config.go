package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// CacheTTL bounds how long loaded tables and derived results are
	// memoized before recomputation
	CacheTTL time.Duration

	// MaxUploadRows caps the size of an uploaded scenario skim
	MaxUploadRows int

	// TimeMappingScheme overrides the default band colors; missing keys
	// fall back to defaults downstream
	TimeMappingScheme map[string]string
}

// Load reads configuration from the environment with defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/accessibility.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	ttlMinutes := 60
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttlMinutes = n
		} else {
			log.Printf("Invalid CACHE_TTL_MINUTES %q, using default", v)
		}
	}

	maxUploadRows := 2_000_000
	if v := os.Getenv("MAX_UPLOAD_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxUploadRows = n
		}
	}

	var scheme map[string]string
	if v := os.Getenv("TIME_MAPPING_SCHEME"); v != "" {
		if err := json.Unmarshal([]byte(v), &scheme); err != nil {
			log.Printf("Invalid TIME_MAPPING_SCHEME, using defaults: %v", err)
			scheme = nil
		}
	}

	return &Config{
		Port:              port,
		DBPath:            dbPath,
		JWTSecret:         jwtSecret,
		CacheTTL:          time.Duration(ttlMinutes) * time.Minute,
		MaxUploadRows:     maxUploadRows,
		TimeMappingScheme: scheme,
	}
}
