package utils

import "github.com/gin-gonic/gin"

// StatusResponse is the flat status envelope the web clients expect:
// {"status": "...", "message": "...", "tx_hash": "..."}.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	TxHash  string `json:"tx_hash,omitempty"`
}

// OK writes a plain success status.
func OK(c *gin.Context) {
	c.JSON(200, StatusResponse{Status: "success"})
}

// Fail writes a business-level failure as a status/message pair. The HTTP
// status stays meaningful (200 for user-correctable rejections, 4xx/5xx for
// protocol and internal faults) but clients only inspect the body.
func Fail(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, StatusResponse{Status: "error", Message: message})
}
