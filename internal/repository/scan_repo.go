package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/milkfamily/trace_api/internal/models"
)

// ScanRepository handles the append-only scan audit log.
type ScanRepository struct {
	db *sqlx.DB
}

// NewScanRepository creates a new ScanRepository.
func NewScanRepository(db *sqlx.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Insert appends one scan event.
func (r *ScanRepository) Insert(e *models.ScanEvent) error {
	const q = `
        INSERT INTO scan_history (uid, location, time, timestamp)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	return r.db.QueryRowx(q, e.UID, e.Location, e.Time, e.Timestamp).Scan(&e.ID)
}

// Latest returns the most recent events, newest first, bounded by limit.
func (r *ScanRepository) Latest(limit int) ([]models.ScanEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
        SELECT * FROM scan_history
        ORDER BY timestamp DESC, id DESC
        LIMIT $1`

	events := []models.ScanEvent{}
	if err := r.db.Select(&events, q, limit); err != nil {
		return nil, err
	}
	return events, nil
}
