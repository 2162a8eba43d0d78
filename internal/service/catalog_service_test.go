package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milkfamily/trace_api/internal/models"
	"github.com/milkfamily/trace_api/internal/utils"
	"github.com/milkfamily/trace_api/pkg/ledger"
)

type fakeProductStore struct {
	byUID   map[string]*models.Product
	created []*models.Product
	hidden  map[string]bool
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{byUID: map[string]*models.Product{}, hidden: map[string]bool{}}
}

func (f *fakeProductStore) GetAll(includeHidden bool) ([]models.Product, error) {
	out := []models.Product{}
	for i := len(f.created) - 1; i >= 0; i-- {
		p := *f.created[i]
		if p.IsHidden && !includeHidden {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductStore) GetByUID(uid string) (*models.Product, error) {
	if p, ok := f.byUID[uid]; ok {
		return p, nil
	}
	return nil, utils.ErrProductNotFound
}

func (f *fakeProductStore) Create(p *models.Product) error {
	if _, ok := f.byUID[p.UID]; ok {
		return utils.ErrDuplicateUID
	}
	f.byUID[p.UID] = p
	f.created = append(f.created, p)
	return nil
}

func (f *fakeProductStore) SetHidden(uid string, hidden bool) error {
	p, ok := f.byUID[uid]
	if !ok {
		return utils.ErrProductNotFound
	}
	p.IsHidden = hidden
	return nil
}

type fakeAttestationWriter struct {
	written []*ledger.Attestation
	txHash  string
	err     error
}

func (f *fakeAttestationWriter) Write(_ context.Context, att *ledger.Attestation) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.written = append(f.written, att)
	return f.txHash, nil
}

func validInput() *CreateProductInput {
	return &CreateProductInput{
		UID:            "MF_001",
		Name:           "Sữa tươi MilkFamily",
		BatchNumber:    "L2026-05",
		ExpiryDateUnix: 1780000000,
	}
}

func TestCatalogCreate(t *testing.T) {
	store := newFakeProductStore()
	attestor := &fakeAttestationWriter{txHash: "0xdeadbeef"}
	svc := NewCatalogService(store, attestor, "http://localhost:5173")

	tx, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", tx)

	require.Len(t, attestor.written, 1)
	assert.Equal(t, "MF_001", attestor.written[0].UID)
	assert.Equal(t, int64(1780000000), attestor.written[0].ExpiryUnix)

	p, err := store.GetByUID("MF_001")
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", p.TxHash)
	assert.Equal(t, utils.FormatDateUnix(1780000000), p.ExpiryDate)
	assert.True(t, strings.HasPrefix(p.QRImage, "data:image/png;base64,"))
	assert.Equal(t, DefaultProductImage, p.ProductImage)
	assert.Equal(t, DefaultDescription, p.Description)
	assert.Equal(t, int64(0), p.ScanCount)
}

func TestCatalogCreateRejectsMissingFields(t *testing.T) {
	svc := NewCatalogService(newFakeProductStore(), &fakeAttestationWriter{txHash: "0x1"}, "http://localhost:5173")

	for _, mutate := range []func(*CreateProductInput){
		func(in *CreateProductInput) { in.UID = "" },
		func(in *CreateProductInput) { in.Name = "" },
		func(in *CreateProductInput) { in.BatchNumber = "" },
		func(in *CreateProductInput) { in.ExpiryDateUnix = 0 },
	} {
		in := validInput()
		mutate(in)
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, utils.ErrMissingField)
	}
}

func TestCatalogCreateDuplicateLeavesStoresUntouched(t *testing.T) {
	store := newFakeProductStore()
	attestor := &fakeAttestationWriter{txHash: "0x1"}
	svc := NewCatalogService(store, attestor, "http://localhost:5173")

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, utils.ErrDuplicateUID)

	// The duplicate attempt must not have written anywhere.
	assert.Len(t, attestor.written, 1)
	assert.Len(t, store.created, 1)
}

func TestCatalogCreateLedgerFailure(t *testing.T) {
	store := newFakeProductStore()
	svc := NewCatalogService(store, &fakeAttestationWriter{err: errors.New("connection refused")}, "http://localhost:5173")

	_, err := svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, utils.ErrLedgerUnavailable)
	assert.Empty(t, store.created)
}

func TestCatalogListHonorsVisibility(t *testing.T) {
	store := newFakeProductStore()
	svc := NewCatalogService(store, &fakeAttestationWriter{txHash: "0x1"}, "http://localhost:5173")

	for _, uid := range []string{"MF_001", "MF_002"} {
		in := validInput()
		in.UID = uid
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}
	require.NoError(t, svc.SetVisibility("MF_001", true))

	visible, err := svc.List(false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "MF_002", visible[0].UID)

	all, err := svc.List(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
