package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/milkfamily/trace_api/internal/models"
	"github.com/milkfamily/trace_api/internal/service"
	"github.com/milkfamily/trace_api/internal/utils"
)

// ScanHandler handles scan recording and the audit log listing.
type ScanHandler struct {
	scans *service.ScanService
}

// NewScanHandler constructs a ScanHandler.
func NewScanHandler(scans *service.ScanService) *ScanHandler {
	return &ScanHandler{scans: scans}
}

// recordScanRequest is the body of POST /record_scan.
type recordScanRequest struct {
	UID      string `json:"uid"`
	Location string `json:"location"`
}

// RecordScan records one verification scan. The effects are best-effort, so
// a well-formed request always succeeds from the caller's point of view.
func (h *ScanHandler) RecordScan(c *gin.Context) {
	var req recordScanRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UID == "" {
		utils.Fail(c, 400, "Thiếu mã sản phẩm (uid).")
		return
	}

	h.scans.Record(req.UID, req.Location)
	utils.OK(c)
}

// GetHistory returns the latest scan events, newest first. A store failure
// degrades to an empty listing for the admin view.
func (h *ScanHandler) GetHistory(c *gin.Context) {
	events, err := h.scans.History()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load scan history")
		c.JSON(200, []models.ScanEvent{})
		return
	}
	c.JSON(200, events)
}
