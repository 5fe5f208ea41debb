package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lagoslab/accessibility-backend-go/internal/database"
	"github.com/lagoslab/accessibility-backend-go/internal/models"
)

// ZoneRepository handles database operations for zones and their
// numeric attributes
type ZoneRepository struct {
	db *sql.DB
}

// NewZoneRepository creates a new zone repository
func NewZoneRepository(db *sql.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// ReplaceZones replaces the full zone table in one transaction
func (r *ZoneRepository) ReplaceZones(zones []models.Zone) error {
	return database.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM zone_attributes"); err != nil {
			return fmt.Errorf("failed to clear zone attributes: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM zones"); err != nil {
			return fmt.Errorf("failed to clear zones: %w", err)
		}

		zoneStmt, err := tx.Prepare("INSERT INTO zones (zone_id, name, geometry) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare zone insert: %w", err)
		}
		defer zoneStmt.Close()

		attrStmt, err := tx.Prepare("INSERT INTO zone_attributes (zone_id, attribute, value) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare attribute insert: %w", err)
		}
		defer attrStmt.Close()

		for _, z := range zones {
			if _, err := zoneStmt.Exec(z.ZoneID, z.Name, string(z.Geometry)); err != nil {
				return fmt.Errorf("failed to insert zone %d: %w", z.ZoneID, err)
			}
			for attr, value := range z.Attributes {
				if _, err := attrStmt.Exec(z.ZoneID, attr, value); err != nil {
					return fmt.Errorf("failed to insert attribute %q for zone %d: %w", attr, z.ZoneID, err)
				}
			}
		}
		return nil
	})
}

// GetZones loads all zones with their attributes
func (r *ZoneRepository) GetZones() ([]models.Zone, error) {
	rows, err := r.db.Query("SELECT zone_id, name, geometry FROM zones ORDER BY zone_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query zones: %w", err)
	}
	defer rows.Close()

	var zones []models.Zone
	index := make(map[int32]int)
	for rows.Next() {
		var z models.Zone
		var geometry string
		if err := rows.Scan(&z.ZoneID, &z.Name, &geometry); err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		if geometry != "" {
			z.Geometry = json.RawMessage(geometry)
		}
		z.Attributes = make(map[string]float64)
		index[z.ZoneID] = len(zones)
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate zones: %w", err)
	}

	attrRows, err := r.db.Query("SELECT zone_id, attribute, value FROM zone_attributes")
	if err != nil {
		return nil, fmt.Errorf("failed to query zone attributes: %w", err)
	}
	defer attrRows.Close()

	for attrRows.Next() {
		var zoneID int32
		var attr string
		var value float64
		if err := attrRows.Scan(&zoneID, &attr, &value); err != nil {
			return nil, fmt.Errorf("failed to scan zone attribute: %w", err)
		}
		if i, ok := index[zoneID]; ok {
			zones[i].Attributes[attr] = value
		}
	}
	if err := attrRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate zone attributes: %w", err)
	}

	return zones, nil
}

// Count returns the number of stored zones
func (r *ZoneRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM zones").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count zones: %w", err)
	}
	return count, nil
}
