package service

import (
	"context"
	"fmt"
	"time"

	"github.com/milkfamily/trace_api/internal/models"
	"github.com/milkfamily/trace_api/internal/utils"
	"github.com/milkfamily/trace_api/pkg/ledger"
	"github.com/milkfamily/trace_api/pkg/qrgen"
)

// Defaults applied when a creation request omits the optional display fields.
const (
	DefaultProductImage = "https://vinamilk.com.vn/static/uploads/2021/05/Sua-tuoi-tiet-trung-Vinamilk-100-tach-beo-khong-duong-1.jpg"
	DefaultDescription  = "Sản phẩm sữa tươi tiệt trùng, giàu dinh dưỡng, tốt cho sức khỏe."
)

const qrImageSize = 256

// productStore is the slice of ProductRepository the catalog needs.
type productStore interface {
	GetAll(includeHidden bool) ([]models.Product, error)
	GetByUID(uid string) (*models.Product, error)
	Create(p *models.Product) error
	SetHidden(uid string, hidden bool) error
}

// attestationWriter is the slice of the ledger client the catalog needs.
type attestationWriter interface {
	Write(ctx context.Context, att *ledger.Attestation) (string, error)
}

// CatalogService provides product listing and creation.
type CatalogService struct {
	products      productStore
	ledger        attestationWriter
	clientBaseURL string
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(products productStore, ledger attestationWriter, clientBaseURL string) *CatalogService {
	return &CatalogService{products: products, ledger: ledger, clientBaseURL: clientBaseURL}
}

// CreateProductInput is the creation payload. ExpiryDateUnix is the canonical
// expiry in unix seconds; display forms are derived from it.
type CreateProductInput struct {
	UID            string `json:"uid"`
	Name           string `json:"name"`
	BatchNumber    string `json:"batch_number"`
	ExpiryDateUnix int64  `json:"expiry_date_unix"`
	QRURL          string `json:"qr_url"`
	ProductImage   string `json:"product_image"`
	Description    string `json:"description"`
}

// List returns products newest-created first. Hidden products are filtered
// out unless includeHidden is set.
func (s *CatalogService) List(includeHidden bool) ([]models.Product, error) {
	return s.products.GetAll(includeHidden)
}

// Create registers a new product. Order matters: the duplicate check runs
// before any write, the ledger attestation is written first so its tx hash
// can be stored on the record, then the full record lands in the store.
func (s *CatalogService) Create(ctx context.Context, in *CreateProductInput) (string, error) {
	if in.UID == "" || in.Name == "" || in.BatchNumber == "" || in.ExpiryDateUnix <= 0 {
		return "", fmt.Errorf("%w: uid, name, batch_number and expiry_date_unix are required", utils.ErrMissingField)
	}

	if _, err := s.products.GetByUID(in.UID); err == nil {
		return "", utils.ErrDuplicateUID
	} else if err != utils.ErrProductNotFound {
		return "", fmt.Errorf("duplicate check failed: %w", err)
	}

	txHash, err := s.ledger.Write(ctx, &ledger.Attestation{
		UID:         in.UID,
		Name:        in.Name,
		BatchNumber: in.BatchNumber,
		ExpiryUnix:  in.ExpiryDateUnix,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrLedgerUnavailable, err)
	}

	// The QR opens the consumer client pre-filled with this uid.
	qrTarget := in.QRURL
	if qrTarget == "" {
		qrTarget = fmt.Sprintf("%s?uid=%s", s.clientBaseURL, in.UID)
	}
	qrImage, err := qrgen.DataURL(qrTarget, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("qr generation failed: %w", err)
	}

	p := &models.Product{
		UID:          in.UID,
		Name:         in.Name,
		BatchNumber:  in.BatchNumber,
		ExpiryDate:   utils.FormatDateUnix(in.ExpiryDateUnix),
		ExpiryUnix:   in.ExpiryDateUnix,
		CreatedAt:    utils.FormatDate(time.Now()),
		TxHash:       txHash,
		QRImage:      qrImage,
		ProductImage: in.ProductImage,
		Description:  in.Description,
	}
	if p.ProductImage == "" {
		p.ProductImage = DefaultProductImage
	}
	if p.Description == "" {
		p.Description = DefaultDescription
	}

	// The repository maps a raced uid collision back to ErrDuplicateUID.
	if err := s.products.Create(p); err != nil {
		return "", err
	}
	return txHash, nil
}

// SetVisibility toggles the server-side listing flag for a product.
func (s *CatalogService) SetVisibility(uid string, hidden bool) error {
	return s.products.SetHidden(uid, hidden)
}
