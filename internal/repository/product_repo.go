package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/milkfamily/trace_api/internal/models"
	"github.com/milkfamily/trace_api/internal/utils"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// ProductRepository handles data access for the product catalog.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns products newest-created first. Hidden products are excluded
// unless includeHidden is set; the flag only affects listing, direct UID
// lookups always see every record.
func (r *ProductRepository) GetAll(includeHidden bool) ([]models.Product, error) {
	const q = `
        SELECT * FROM products
        WHERE ($1 OR is_hidden = false)
        ORDER BY inserted_at DESC, id DESC`

	products := []models.Product{}
	if err := r.db.Select(&products, q, includeHidden); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByUID returns a single product by uid.
func (r *ProductRepository) GetByUID(uid string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE uid = $1 LIMIT 1`

	var p models.Product
	if err := r.db.Get(&p, q, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product record. A uid collision — whether seen by the
// pre-insert check in the service or raced in between — surfaces as
// utils.ErrDuplicateUID.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
        INSERT INTO products
            (uid, name, batch_number, expiry_date, expiry_unix, created_at,
             tx_hash, qr_image, product_image, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, scan_count, is_hidden, inserted_at`

	err := r.db.QueryRowx(q,
		p.UID,
		p.Name,
		p.BatchNumber,
		p.ExpiryDate,
		p.ExpiryUnix,
		p.CreatedAt,
		p.TxHash,
		p.QRImage,
		p.ProductImage,
		p.Description,
	).Scan(&p.ID, &p.ScanCount, &p.IsHidden, &p.InsertedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return utils.ErrDuplicateUID
		}
		return err
	}
	return nil
}

// IncrementScanCount bumps the scan counter by one in a single statement so
// concurrent scans never lose updates. Unknown uids are a silent no-op, the
// counter belongs to whatever record exists.
func (r *ProductRepository) IncrementScanCount(uid string) error {
	const q = `UPDATE products SET scan_count = scan_count + 1 WHERE uid = $1`
	_, err := r.db.Exec(q, uid)
	return err
}

// SetHidden toggles the listing visibility flag of a product.
func (r *ProductRepository) SetHidden(uid string, hidden bool) error {
	const q = `UPDATE products SET is_hidden = $2 WHERE uid = $1`
	res, err := r.db.Exec(q, uid, hidden)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return utils.ErrProductNotFound
	}
	return nil
}
