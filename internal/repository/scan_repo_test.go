package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/milkfamily/trace_api/internal/models"
)

func TestScanRepositoryInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScanRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO scan_history")).
		WithArgs("MF_001", "Hà Nội", "10:00:00 01/06/2026", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	e := &models.ScanEvent{UID: "MF_001", Location: "Hà Nội", Time: "10:00:00 01/06/2026", Timestamp: now}
	assert.NoError(t, repo.Insert(e))
	assert.Equal(t, int64(7), e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanRepositoryLatestDefaultsLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScanRepository(db)

	rows := sqlmock.NewRows([]string{"id", "uid", "location", "time", "timestamp"}).
		AddRow(int64(2), "MF_001", models.DefaultScanLocation, "10:00:01 01/06/2026", time.Now()).
		AddRow(int64(1), "MF_001", models.DefaultScanLocation, "10:00:00 01/06/2026", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY timestamp DESC, id DESC")).
		WithArgs(50).
		WillReturnRows(rows)

	events, err := repo.Latest(0)
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
