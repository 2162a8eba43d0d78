package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/milkfamily/trace_api/internal/models"
	"github.com/milkfamily/trace_api/internal/utils"
	"github.com/milkfamily/trace_api/pkg/ledger"
)

// Display values synthesized when a record is recovered from the ledger,
// which attests identity fields only.
const (
	PlaceholderImage     = "https://via.placeholder.com/300?text=No+Image"
	RecoveredDescription = "Dữ liệu được khôi phục từ sổ cái xác thực (chưa đồng bộ về cơ sở dữ liệu)."
)

// ProductFields is the subset of display data a lookup source can produce.
type ProductFields struct {
	UID          string
	Name         string
	BatchNumber  string
	ExpiryDate   string
	ProductImage string
	Description  string
}

// Source is one tier of the verification chain. Lookup returns (nil, nil)
// when the source simply does not know the uid; errors mean the source itself
// failed. New fallback tiers slot in by appending another Source.
type Source interface {
	Name() string
	Lookup(ctx context.Context, uid string) (*ProductFields, error)
}

// VerificationResult is the wire shape of GET /verify/:uid.
type VerificationResult struct {
	IsValid      bool   `json:"is_valid"`
	UID          string `json:"uid,omitempty"`
	Name         string `json:"name,omitempty"`
	BatchNumber  string `json:"batch_number,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	ProductImage string `json:"product_image,omitempty"`
	Description  string `json:"description,omitempty"`
	Source       string `json:"source,omitempty"`
}

// VerifyService resolves a uid against an ordered chain of lookup sources.
type VerifyService struct {
	sources []Source
}

// NewVerifyService constructs a VerifyService. Source order is significant:
// earlier sources win, later ones are consulted only on a miss.
func NewVerifyService(sources ...Source) *VerifyService {
	return &VerifyService{sources: sources}
}

// Verify walks the chain. A failing source counts as a miss — the caller gets
// a negative result, never an error; the ledger tier existing at all is a
// disaster-recovery path and outages must not break the scan flow.
func (s *VerifyService) Verify(ctx context.Context, uid string) *VerificationResult {
	for _, src := range s.sources {
		fields, err := src.Lookup(ctx, uid)
		if err != nil {
			log.Warn().Err(err).Str("source", src.Name()).Str("uid", uid).
				Msg("Lookup source failed, treating as miss")
			continue
		}
		if fields == nil {
			continue
		}
		return &VerificationResult{
			IsValid:      true,
			UID:          fields.UID,
			Name:         fields.Name,
			BatchNumber:  fields.BatchNumber,
			ExpiryDate:   fields.ExpiryDate,
			ProductImage: fields.ProductImage,
			Description:  fields.Description,
			Source:       src.Name(),
		}
	}
	return &VerificationResult{IsValid: false}
}

// productReader is the slice of ProductRepository the primary source needs.
type productReader interface {
	GetByUID(uid string) (*models.Product, error)
}

// PrimarySource reads the record store. It is the preferred tier: richer
// display metadata and a local query.
type PrimarySource struct {
	products productReader
}

// NewPrimarySource constructs the record-store tier.
func NewPrimarySource(products productReader) *PrimarySource {
	return &PrimarySource{products: products}
}

func (s *PrimarySource) Name() string { return "primary" }

func (s *PrimarySource) Lookup(_ context.Context, uid string) (*ProductFields, error) {
	p, err := s.products.GetByUID(uid)
	if err != nil {
		if err == utils.ErrProductNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &ProductFields{
		UID:          p.UID,
		Name:         p.Name,
		BatchNumber:  p.BatchNumber,
		ExpiryDate:   p.ExpiryDate,
		ProductImage: p.ProductImage,
		Description:  p.Description,
	}, nil
}

// attestationReader is the slice of the ledger client the secondary source needs.
type attestationReader interface {
	Read(ctx context.Context, uid string) (*ledger.Attestation, error)
}

// LedgerSource recovers identity fields from the attestation ledger when the
// record store has lost the uid. Display richness is traded for availability.
type LedgerSource struct {
	ledger attestationReader
}

// NewLedgerSource constructs the ledger fallback tier.
func NewLedgerSource(ledger attestationReader) *LedgerSource {
	return &LedgerSource{ledger: ledger}
}

func (s *LedgerSource) Name() string { return "secondary" }

func (s *LedgerSource) Lookup(ctx context.Context, uid string) (*ProductFields, error) {
	att, err := s.ledger.Read(ctx, uid)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, nil
	}
	return &ProductFields{
		UID:          uid,
		Name:         att.Name,
		BatchNumber:  att.BatchNumber,
		ExpiryDate:   utils.FormatDateUnix(att.ExpiryUnix),
		ProductImage: PlaceholderImage,
		Description:  RecoveredDescription,
	}, nil
}
