package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/milkfamily/trace_api/internal/models"
	"github.com/milkfamily/trace_api/internal/utils"
)

// scanCounter is the slice of ProductRepository the recorder needs.
type scanCounter interface {
	IncrementScanCount(uid string) error
}

// scanLog is the slice of ScanRepository the recorder needs.
type scanLog interface {
	Insert(e *models.ScanEvent) error
	Latest(limit int) ([]models.ScanEvent, error)
}

// historyLimit bounds the audit listing to the most recent entries.
const historyLimit = 50

// ScanService records verification scans: a counter bump on the product and
// an appended audit entry.
type ScanService struct {
	products scanCounter
	scans    scanLog
}

// NewScanService constructs a ScanService.
func NewScanService(products scanCounter, scans scanLog) *ScanService {
	return &ScanService{products: products, scans: scans}
}

// Record performs both scan effects. They are independent and best-effort:
// either may fail without blocking the other, and neither failure reaches the
// caller — the user already saw their verification result. Both are attempted
// before this returns, so the audit log is settled when the response goes out.
func (s *ScanService) Record(uid, location string) {
	if location == "" {
		location = models.DefaultScanLocation
	}

	if err := s.products.IncrementScanCount(uid); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("Failed to increment scan count")
	}

	now := time.Now()
	event := &models.ScanEvent{
		UID:       uid,
		Location:  location,
		Time:      utils.FormatDateTime(now),
		Timestamp: now,
	}
	if err := s.scans.Insert(event); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("Failed to append scan event")
	}
}

// History returns the most recent scan events, newest first.
func (s *ScanService) History() ([]models.ScanEvent, error) {
	return s.scans.Latest(historyLimit)
}
