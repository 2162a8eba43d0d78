package models

import "time"

// Product represents a catalog record for a traceable product unit.
// Fields are tagged for both DB scanning and JSON serialization. The display
// date fields (expiry_date, created_at) are stored pre-rendered because the
// consumer client shows them verbatim; expiry_unix keeps the canonical value.
type Product struct {
	ID          int64  `db:"id" json:"-"`
	UID         string `db:"uid" json:"uid"`
	Name        string `db:"name" json:"name"`
	BatchNumber string `db:"batch_number" json:"batch_number"`
	ExpiryDate  string `db:"expiry_date" json:"expiry_date"`
	ExpiryUnix  int64  `db:"expiry_unix" json:"expiry_unix"`
	CreatedAt   string `db:"created_at" json:"created_at"`

	// TxHash is the opaque attestation reference returned by the ledger
	// service at creation time. Stored for traceability only.
	TxHash string `db:"tx_hash" json:"tx_hash"`

	QRImage      string `db:"qr_image" json:"qr_image"`
	ProductImage string `db:"product_image" json:"product_image"`
	Description  string `db:"description" json:"description"`

	// ScanCount is mutated only through ProductRepository.IncrementScanCount.
	ScanCount int64 `db:"scan_count" json:"scan_count"`

	IsHidden   bool      `db:"is_hidden" json:"is_hidden"`
	InsertedAt time.Time `db:"inserted_at" json:"-"`
}
