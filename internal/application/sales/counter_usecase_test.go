package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

func newCounterUC(store *fakeStore) *sales.CounterUseCase {
	return sales.NewCounterUseCase(
		&fakeTxCounterRepo{tx: &fakeTx{store: store}},
		&fakeSalePointRepo{points: map[string]*entity.SalePoint{
			fxSalePointID: {ID: fxSalePointID, OrganizationID: fxOrgID, Name: "Sala 1", IsActive: true},
		}},
		&fakeDocumentTypeRepo{ids: map[string]bool{fxDocTypeID: true}},
	)
}

func TestCounterCreate_ArrancaEnInicialMenosUno(t *testing.T) {
	store := &fakeStore{}
	uc := newCounterUC(store)

	resp, err := uc.Create(context.Background(), fxOrgID, dto.CreateCounterRequest{
		SalePointID:             fxSalePointID,
		DocumentTypeID:          fxDocTypeID,
		InitialNumberAuthorized: 100,
		FinalNumberAuthorized:   200,
		Serial:                  "FCF",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(99), resp.LatestNumberIssued,
		"sin emisiones, el último emitido es inicial-1 y el primer correlativo será el inicial")
	assert.Equal(t, "FCF", resp.Serial)
	require.NotNil(t, store.counter)
	assert.Equal(t, int64(99), store.counter.LatestNumberIssued)
}

func TestCounterCreate_RangoInvalido(t *testing.T) {
	uc := newCounterUC(&fakeStore{})

	_, err := uc.Create(context.Background(), fxOrgID, dto.CreateCounterRequest{
		SalePointID:             fxSalePointID,
		DocumentTypeID:          fxDocTypeID,
		InitialNumberAuthorized: 200,
		FinalNumberAuthorized:   100,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCounterCreate_ReferenciasInexistentes(t *testing.T) {
	uc := newCounterUC(&fakeStore{})

	_, err := uc.Create(context.Background(), fxOrgID, dto.CreateCounterRequest{
		SalePointID:             "sp-fantasma",
		DocumentTypeID:          fxDocTypeID,
		InitialNumberAuthorized: 1,
		FinalNumberAuthorized:   10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), fxOrgID, dto.CreateCounterRequest{
		SalePointID:             fxSalePointID,
		DocumentTypeID:          "dt-fantasma",
		InitialNumberAuthorized: 1,
		FinalNumberAuthorized:   10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Ampliar el rango autorizado no toca el último número emitido: solo la
// emisión lo avanza.
func TestCounterUpdate_NoTocaUltimoEmitido(t *testing.T) {
	store := &fakeStore{counter: freshCounter(42, 100)}
	uc := newCounterUC(store)

	resp, err := uc.Update(context.Background(), fxCounterID, fxOrgID, dto.UpdateCounterRequest{
		InitialNumberAuthorized: 1,
		FinalNumberAuthorized:   100000,
		Serial:                  "FCF-2",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.LatestNumberIssued)
	assert.Equal(t, int64(100000), resp.FinalNumberAuthorized)
	assert.Equal(t, "FCF-2", resp.Serial)
}

func TestCounterUpdate_Inexistente(t *testing.T) {
	uc := newCounterUC(&fakeStore{})

	_, err := uc.Update(context.Background(), "counter-fantasma", fxOrgID, dto.UpdateCounterRequest{
		InitialNumberAuthorized: 1,
		FinalNumberAuthorized:   10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
