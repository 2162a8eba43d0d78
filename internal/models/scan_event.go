package models

import "time"

// DefaultScanLocation is recorded when a scan arrives without a location label.
const DefaultScanLocation = "Không xác định"

// ScanEvent is an append-only audit entry for one verification scan.
// UID is a weak reference: no foreign key, events may refer to products the
// primary store no longer holds.
type ScanEvent struct {
	ID        int64     `db:"id" json:"-"`
	UID       string    `db:"uid" json:"uid"`
	Location  string    `db:"location" json:"location"`
	Time      string    `db:"time" json:"time"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}
