package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/milkfamily/trace_api/internal/service"
	"github.com/milkfamily/trace_api/internal/utils"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	catalog *service.CatalogService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// GetProducts returns the catalog newest-created first as a flat array.
// Hidden products are excluded unless include_hidden=true is passed.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	includeHidden := c.Query("include_hidden") == "true"

	products, err := h.catalog.List(includeHidden)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		utils.Fail(c, 500, "Không thể tải danh sách sản phẩm.")
		return
	}
	c.JSON(200, products)
}

// CreateProduct registers a new product and returns its attestation tx hash.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in service.CreateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Fail(c, 400, "Dữ liệu gửi lên không hợp lệ.")
		return
	}

	txHash, err := h.catalog.Create(c.Request.Context(), &in)
	switch {
	case err == nil:
		c.JSON(200, utils.StatusResponse{Status: "success", TxHash: txHash})
	case errors.Is(err, utils.ErrMissingField):
		utils.Fail(c, 400, "Thiếu thông tin bắt buộc: uid, name, batch_number, expiry_date_unix.")
	case errors.Is(err, utils.ErrDuplicateUID):
		// User-correctable: reported as a status pair, not an HTTP error.
		utils.Fail(c, 200, "Mã ID này đã tồn tại!")
	case errors.Is(err, utils.ErrLedgerUnavailable):
		log.Error().Err(err).Str("uid", in.UID).Msg("Ledger write failed")
		utils.Fail(c, 500, "Không thể ghi chứng thực, vui lòng thử lại sau.")
	default:
		log.Error().Err(err).Str("uid", in.UID).Msg("Product creation failed")
		utils.Fail(c, 500, "Tạo sản phẩm thất bại.")
	}
}

// visibilityRequest is the body of PUT /products/:uid/visibility.
type visibilityRequest struct {
	Hidden bool `json:"hidden"`
}

// SetVisibility toggles whether a product appears in catalog listings.
// Verification by uid is unaffected on purpose: hiding is cosmetic.
func (h *ProductHandler) SetVisibility(c *gin.Context) {
	uid := c.Param("uid")

	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, 400, "Dữ liệu gửi lên không hợp lệ.")
		return
	}

	if err := h.catalog.SetVisibility(uid, req.Hidden); err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Fail(c, 404, "Không tìm thấy sản phẩm.")
			return
		}
		log.Error().Err(err).Str("uid", uid).Msg("Failed to update visibility")
		utils.Fail(c, 500, "Cập nhật thất bại.")
		return
	}
	utils.OK(c)
}
