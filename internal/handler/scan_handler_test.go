package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milkfamily/trace_api/internal/models"
	"github.com/milkfamily/trace_api/internal/service"
)

type memCounter struct {
	counts map[string]int64
}

func (m *memCounter) IncrementScanCount(uid string) error {
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[uid]++
	return nil
}

type memScanLog struct {
	events []*models.ScanEvent
}

func (m *memScanLog) Insert(e *models.ScanEvent) error {
	m.events = append(m.events, e)
	return nil
}

func (m *memScanLog) Latest(limit int) ([]models.ScanEvent, error) {
	out := []models.ScanEvent{}
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *m.events[i])
	}
	return out, nil
}

func scanRouter(counter *memCounter, log *memScanLog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewScanHandler(service.NewScanService(counter, log))
	router.POST("/record_scan", h.RecordScan)
	router.GET("/scan_history", h.GetHistory)
	return router
}

func TestRecordScan(t *testing.T) {
	counter := &memCounter{}
	scanLog := &memScanLog{}
	router := scanRouter(counter, scanLog)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/record_scan",
		strings.NewReader(`{"uid":"MF_001","location":"Hà Nội"}`))
	router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"status":"success"}`, w.Body.String())
	assert.Equal(t, int64(1), counter.counts["MF_001"])
	require.Len(t, scanLog.events, 1)
	assert.Equal(t, "Hà Nội", scanLog.events[0].Location)
}

func TestRecordScanMissingUID(t *testing.T) {
	counter := &memCounter{}
	router := scanRouter(counter, &memScanLog{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/record_scan", strings.NewReader(`{"location":"HCM"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Empty(t, counter.counts)
}

func TestGetHistoryNewestFirst(t *testing.T) {
	counter := &memCounter{}
	scanLog := &memScanLog{}
	router := scanRouter(counter, scanLog)

	for _, loc := range []string{"A", "B", "C"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/record_scan",
			strings.NewReader(`{"uid":"MF_001","location":"`+loc+`"}`))
		router.ServeHTTP(w, req)
		require.Equal(t, 200, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scan_history", nil))
	require.Equal(t, 200, w.Code)

	var events []models.ScanEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 3)
	assert.Equal(t, "C", events[0].Location)
	assert.Equal(t, "A", events[2].Location)
}
