package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lagoslab/accessibility-backend-go/internal/database"
	"github.com/lagoslab/accessibility-backend-go/internal/models"
)

// BaseSkimName is the reserved name of the always-present base skim
const BaseSkimName = "base"

// ErrSkimNotFound means the requested skim has not been loaded
var ErrSkimNotFound = errors.New("skim not found")

// ScenarioInfo summarizes one stored scenario skim
type ScenarioInfo struct {
	Name        string    `json:"name"`
	UploadedAt  time.Time `json:"uploaded_at"`
	EntryCount  int       `json:"entry_count"`
	DroppedRows int       `json:"dropped_rows"`
}

// SkimRepository handles database operations for aggregated zone-level
// skims and scenario metadata
type SkimRepository struct {
	db *sql.DB
}

// NewSkimRepository creates a new skim repository
func NewSkimRepository(db *sql.DB) *SkimRepository {
	return &SkimRepository{db: db}
}

// ReplaceSkim stores an aggregated skim under its name, replacing any
// previous version, and records scenario metadata
func (r *SkimRepository) ReplaceSkim(sk *models.Skim, droppedRows int) error {
	return database.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM skims WHERE skim_name = ?", sk.Name); err != nil {
			return fmt.Errorf("failed to clear skim %q: %w", sk.Name, err)
		}

		stmt, err := tx.Prepare("INSERT INTO skims (skim_name, origin_zone, destination_zone, travel_time) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare skim insert: %w", err)
		}
		defer stmt.Close()

		for _, e := range sk.Entries {
			if _, err := stmt.Exec(sk.Name, e.OriginZone, e.DestinationZone, e.TravelTime); err != nil {
				return fmt.Errorf("failed to insert skim entry (%d,%d): %w", e.OriginZone, e.DestinationZone, err)
			}
		}

		_, err = tx.Exec(`
			INSERT INTO scenarios (name, uploaded_at, entry_count, dropped_rows)
			VALUES (?, CURRENT_TIMESTAMP, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				uploaded_at = CURRENT_TIMESTAMP,
				entry_count = excluded.entry_count,
				dropped_rows = excluded.dropped_rows`,
			sk.Name, len(sk.Entries), droppedRows)
		if err != nil {
			return fmt.Errorf("failed to record scenario %q: %w", sk.Name, err)
		}
		return nil
	})
}

// GetSkim loads an aggregated skim by name
func (r *SkimRepository) GetSkim(name string) (*models.Skim, error) {
	rows, err := r.db.Query(`
		SELECT origin_zone, destination_zone, travel_time
		FROM skims WHERE skim_name = ?
		ORDER BY origin_zone, destination_zone`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query skim %q: %w", name, err)
	}
	defer rows.Close()

	sk := &models.Skim{Name: name}
	for rows.Next() {
		var e models.SkimEntry
		if err := rows.Scan(&e.OriginZone, &e.DestinationZone, &e.TravelTime); err != nil {
			return nil, fmt.Errorf("failed to scan skim entry: %w", err)
		}
		sk.Entries = append(sk.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate skim %q: %w", name, err)
	}
	if len(sk.Entries) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrSkimNotFound, name)
	}

	return sk, nil
}

// ListScenarios returns metadata for all stored skims except the base
func (r *SkimRepository) ListScenarios() ([]ScenarioInfo, error) {
	rows, err := r.db.Query(`
		SELECT name, uploaded_at, entry_count, dropped_rows
		FROM scenarios WHERE name != ?
		ORDER BY uploaded_at DESC`, BaseSkimName)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var infos []ScenarioInfo
	for rows.Next() {
		var info ScenarioInfo
		if err := rows.Scan(&info.Name, &info.UploadedAt, &info.EntryCount, &info.DroppedRows); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteScenario removes a scenario skim and its metadata
func (r *SkimRepository) DeleteScenario(name string) error {
	if name == BaseSkimName {
		return fmt.Errorf("cannot delete the base skim")
	}
	return database.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM skims WHERE skim_name = ?", name); err != nil {
			return fmt.Errorf("failed to delete skim %q: %w", name, err)
		}
		res, err := tx.Exec("DELETE FROM scenarios WHERE name = ?", name)
		if err != nil {
			return fmt.Errorf("failed to delete scenario %q: %w", name, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: %q", ErrSkimNotFound, name)
		}
		return nil
	})
}
