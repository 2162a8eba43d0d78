package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/milkfamily/trace_api/internal/service"
	"github.com/milkfamily/trace_api/internal/utils"
)

// AssistantHandler handles the product Q&A endpoint.
type AssistantHandler struct {
	assistant *service.AssistantService
}

// NewAssistantHandler constructs an AssistantHandler.
func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// askRequest is the body of POST /ask_ai.
type askRequest struct {
	ProductName string `json:"product_name"`
	Question    string `json:"question"`
}

// AskAssistant maps a consumer question to a canned answer.
func (h *AssistantHandler) AskAssistant(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, 400, "Dữ liệu gửi lên không hợp lệ.")
		return
	}

	c.JSON(200, gin.H{"answer": h.assistant.Answer(req.ProductName, req.Question)})
}
