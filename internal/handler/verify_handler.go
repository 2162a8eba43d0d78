package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/milkfamily/trace_api/internal/service"
)

// VerifyHandler handles the authenticity lookup endpoint.
type VerifyHandler struct {
	verify *service.VerifyService
}

// NewVerifyHandler constructs a VerifyHandler.
func NewVerifyHandler(verify *service.VerifyService) *VerifyHandler {
	return &VerifyHandler{verify: verify}
}

// VerifyProduct resolves a uid through the lookup chain. An unknown uid is a
// valid negative answer, never an error status.
func (h *VerifyHandler) VerifyProduct(c *gin.Context) {
	c.JSON(200, h.verify.Verify(c.Request.Context(), c.Param("uid")))
}
