package repository

import (
	"database/sql"
	"fmt"

	"github.com/lagoslab/accessibility-backend-go/internal/database"
	"github.com/lagoslab/accessibility-backend-go/internal/skim"
)

// MappingRepository handles database operations for the node-to-zone
// mapping table
type MappingRepository struct {
	db *sql.DB
}

// NewMappingRepository creates a new mapping repository
func NewMappingRepository(db *sql.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

// ReplaceMapping replaces the full node-to-zone mapping in one transaction
func (r *MappingRepository) ReplaceMapping(pairs []skim.NodeZonePair) error {
	return database.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM node_zones"); err != nil {
			return fmt.Errorf("failed to clear node mapping: %w", err)
		}

		stmt, err := tx.Prepare("INSERT OR REPLACE INTO node_zones (node_id, zone_id) VALUES (?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare mapping insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range pairs {
			if _, err := stmt.Exec(p.NodeID, p.ZoneID); err != nil {
				return fmt.Errorf("failed to insert mapping for node %d: %w", p.NodeID, err)
			}
		}
		return nil
	})
}

// GetMapping loads all node-to-zone pairs
func (r *MappingRepository) GetMapping() ([]skim.NodeZonePair, error) {
	rows, err := r.db.Query("SELECT node_id, zone_id FROM node_zones")
	if err != nil {
		return nil, fmt.Errorf("failed to query node mapping: %w", err)
	}
	defer rows.Close()

	var pairs []skim.NodeZonePair
	for rows.Next() {
		var p skim.NodeZonePair
		if err := rows.Scan(&p.NodeID, &p.ZoneID); err != nil {
			return nil, fmt.Errorf("failed to scan node mapping: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}
