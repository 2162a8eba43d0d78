package repository

import (
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milkfamily/trace_api/internal/models"
	"github.com/milkfamily/trace_api/internal/utils"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestProductRepositoryCreateMapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "products_uid_key"})

	err := repo.Create(&models.Product{UID: "MF_001", Name: "Sữa tươi"})
	assert.ErrorIs(t, err, utils.ErrDuplicateUID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepositoryGetByUIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM products WHERE uid = $1")).
		WithArgs("MISSING").
		WillReturnError(sql.ErrNoRows)

	p, err := repo.GetByUID("MISSING")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepositoryIncrementScanCountIsSingleStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	// The increment must happen inside one UPDATE so concurrent scans cannot
	// interleave a read-modify-write.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET scan_count = scan_count + 1 WHERE uid = $1")).
		WithArgs("MF_001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.IncrementScanCount("MF_001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepositorySetHiddenUnknownUID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET is_hidden = $2 WHERE uid = $1")).
		WithArgs("MISSING", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetHidden("MISSING", true)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
