package sales_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	fxOrgID       = "org-1"
	fxUserID      = "user-1"
	fxClientID    = "client-1"
	fxSalePointID = "sp-1"
	fxDocTypeID   = "dt-1"
	fxTermID      = "term-contado"
	fxFormID      = "form-efectivo"
	fxArticleID   = "art-cafe"
	fxCounterID   = "counter-1"
)

type testEnv struct {
	store *fakeStore
	users *fakeUserRepo
	uc    *sales.CreateSaleOrderUseCase
}

// newTestEnv arma el caso de uso completo sobre fakes: catálogo poblado,
// usuario con acceso al punto de venta y el contador indicado (nil = sin
// configuración de correlativo).
func newTestEnv(counter *entity.SalePointDocumentType) *testEnv {
	store := &fakeStore{counter: counter}

	users := &fakeUserRepo{access: map[string]bool{fxUserID + "|" + fxSalePointID: true}}
	validator := sales.NewValidator(
		&fakeClientRepo{ids: map[string]bool{fxClientID: true}},
		&fakeSalePointRepo{points: map[string]*entity.SalePoint{
			fxSalePointID: {ID: fxSalePointID, OrganizationID: fxOrgID, Name: "Sala 1", IsActive: true},
		}},
		&fakeDocumentTypeRepo{ids: map[string]bool{fxDocTypeID: true}},
		&fakePaymentTermRepo{ids: map[string]bool{fxTermID: true}},
		&fakePaymentFormRepo{ids: map[string]bool{fxFormID: true}},
		&fakeArticleRepo{articles: map[string]*entity.Article{
			fxArticleID: {
				ID:             fxArticleID,
				OrganizationID: fxOrgID,
				Code:           "CAFE-500",
				Name:           "Café molido 500g",
				RetailPrice:    decimal.RequireFromString("11.30"),
				Cost:           decimal.RequireFromString("6.50"),
				IsActive:       true,
			},
		}},
		users,
	)

	uc := sales.NewCreateSaleOrderUseCase(&fakeTxRunner{store: store}, validator, logger.Discard())
	return &testEnv{store: store, users: users, uc: uc}
}

func freshCounter(latest, final int64) *entity.SalePointDocumentType {
	return &entity.SalePointDocumentType{
		ID:                      fxCounterID,
		OrganizationID:          fxOrgID,
		SalePointID:             fxSalePointID,
		DocumentTypeID:          fxDocTypeID,
		InitialNumberAuthorized: 1,
		FinalNumberAuthorized:   final,
		LatestNumberIssued:      latest,
		Serial:                  "FCF",
	}
}

func validRequest() dto.CreateSaleOrderRequest {
	return dto.CreateSaleOrderRequest{
		ClientID:       fxClientID,
		SalePointID:    fxSalePointID,
		DocumentTypeID: fxDocTypeID,
		PaymentTermID:  fxTermID,
		PaymentFormID:  fxFormID,
		Details: []dto.SaleOrderLineRequest{
			{ArticleID: fxArticleID, Quantity: decimal.NewFromInt(2)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión exitosa
// ──────────────────────────────────────────────────────────────────────────────

// Dos unidades a $11.30 (IVA incluido): total 22.60, afecto 20.00, IVA 2.60.
// El correlativo asignado es el inicial autorizado y el contador queda en 1.
func TestCreateSaleOrder_EmisionExitosa(t *testing.T) {
	env := newTestEnv(freshCounter(0, 100000))

	resp, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.DocumentNumber, "el primer correlativo debe ser el inicial autorizado")
	assert.Equal(t, entity.OrderStatusIssued, resp.Status)
	assert.Equal(t, fxUserID, resp.CreatedBy, "el creador sale del token, no del body")
	assert.Equal(t, fxOrgID, resp.OrganizationID)

	assert.True(t, resp.SalesTotal.Equal(decimal.RequireFromString("22.60")),
		"total de la venta: got %s", resp.SalesTotal)
	assert.True(t, resp.SubjectAmountSum.Equal(decimal.RequireFromString("20.00")),
		"monto afecto sin IVA: got %s", resp.SubjectAmountSum)
	assert.True(t, resp.CollectedTaxAmountSum.Equal(decimal.RequireFromString("2.60")),
		"IVA percibido: got %s", resp.CollectedTaxAmountSum)
	assert.True(t, resp.ExemptAmountSum.IsZero())
	assert.True(t, resp.NotSubjectAmountSum.IsZero())

	require.Len(t, env.store.orders, 1, "la orden debe quedar persistida")
	require.Len(t, env.store.details, 1)
	persisted := env.store.orders[0]
	assert.Equal(t, fxCounterID, persisted.SalePointDocumentTypeID,
		"la orden referencia la configuración de correlativo usada")
	assert.Equal(t, int64(1), env.store.counter.LatestNumberIssued,
		"el contador avanza en la misma transacción")
}

// El precio de la línea en el request gana sobre el precio de catálogo.
func TestCreateSaleOrder_PrecioDelRequestGana(t *testing.T) {
	env := newTestEnv(freshCounter(0, 100000))

	precio := decimal.RequireFromString("5.65")
	in := validRequest()
	in.Details[0].Price = &precio

	resp, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, in)
	require.NoError(t, err)

	// 2 × 5.65 = 11.30 → afecto 10.00, IVA 1.30
	assert.True(t, resp.SalesTotal.Equal(decimal.RequireFromString("11.30")), "got %s", resp.SalesTotal)
	assert.True(t, resp.SubjectAmountSum.Equal(decimal.RequireFromString("10.00")), "got %s", resp.SubjectAmountSum)
	assert.True(t, resp.CollectedTaxAmountSum.Equal(decimal.RequireFromString("1.30")), "got %s", resp.CollectedTaxAmountSum)

	require.Len(t, resp.Details, 1)
	assert.True(t, resp.Details[0].RetailPrice.Equal(decimal.RequireFromString("11.30")),
		"el precio de catálogo queda registrado como snapshot")
}

// ──────────────────────────────────────────────────────────────────────────────
// Agotamiento del rango autorizado
// ──────────────────────────────────────────────────────────────────────────────

// Contador en 5 con final 6: la primera emisión consume el 6 y la segunda
// falla con rango agotado sin tocar nada.
func TestCreateSaleOrder_RangoAgotado(t *testing.T) {
	env := newTestEnv(freshCounter(5, 6))

	resp, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.DocumentNumber)

	_, err = env.uc.Create(context.Background(), fxOrgID, fxUserID, validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRangeExhausted)

	assert.Len(t, env.store.orders, 1, "la segunda orden no debe persistirse")
	assert.Equal(t, int64(6), env.store.counter.LatestNumberIssued,
		"el contador no avanza cuando el rango está agotado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación previa: el contador nunca se lee si el request es inválido
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSaleOrder_ArticuloInexistente(t *testing.T) {
	env := newTestEnv(freshCounter(0, 100000))

	in := validRequest()
	in.Details[0].ArticleID = "art-fantasma"

	_, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Field, "articleId", "el error debe nombrar el campo ofensor")
	assert.Equal(t, "art-fantasma", vErr.Reference, "el error debe nombrar la referencia ofensora")

	assert.Zero(t, env.store.allocationReads, "el asignador no debe ejecutarse si la validación falla")
	assert.Empty(t, env.store.orders)
}

func TestCreateSaleOrder_CantidadCero(t *testing.T) {
	env := newTestEnv(freshCounter(0, 100000))

	in := validRequest()
	in.Details[0].Quantity = decimal.Zero

	_, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, env.store.allocationReads)
}

func TestCreateSaleOrder_FechaEmisionInvalida(t *testing.T) {
	env := newTestEnv(freshCounter(0, 100000))

	in := validRequest()
	in.EmissionDate = "2026-13-40"

	_, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, env.store.allocationReads)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización
// ──────────────────────────────────────────────────────────────────────────────

// Un usuario sin acceso al punto de venta recibe ErrForbidden, un fallo
// distinto de "punto de venta no encontrado". Nada se asigna ni persiste.
func TestCreateSaleOrder_SinAccesoPuntoVenta(t *testing.T) {
	env := newTestEnv(freshCounter(0, 100000))

	_, err := env.uc.Create(context.Background(), fxOrgID, "user-ajeno", validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Zero(t, env.store.allocationReads)
	assert.Empty(t, env.store.orders)
	assert.Equal(t, int64(0), env.store.counter.LatestNumberIssued)
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración de correlativo ausente
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSaleOrder_SinConfiguracionCorrelativo(t *testing.T) {
	env := newTestEnv(nil) // sin contador para la tripleta

	_, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCorrelativeConfigMissing)
	assert.Empty(t, env.store.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad de la transacción de emisión
// ──────────────────────────────────────────────────────────────────────────────

// Si la escritura de detalles falla, nada queda: ni orden ni avance del
// contador. No hay correlativos quemados por transacciones revertidas.
func TestCreateSaleOrder_AtomicidadFalloDetalles(t *testing.T) {
	env := newTestEnv(freshCounter(0, 100000))
	env.store.failDetails = true

	_, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, validRequest())
	require.Error(t, err)

	assert.Empty(t, env.store.orders, "la orden no debe quedar persistida")
	assert.Empty(t, env.store.details)
	assert.Equal(t, int64(0), env.store.counter.LatestNumberIssued,
		"el contador no debe avanzar si la transacción revierte")
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrera por el correlativo
// ──────────────────────────────────────────────────────────────────────────────

// Un competidor confirma entre la lectura y el compare-and-swap: la primera
// tentativa pierde, el caso de uso reintenta la transacción completa una vez
// y obtiene el siguiente número libre.
func TestCreateSaleOrder_ReintentoPorCarrera(t *testing.T) {
	env := newTestEnv(freshCounter(0, 100000))
	env.store.afterAllocate = func(s *fakeStore) {
		s.counter.LatestNumberIssued++ // el competidor consumió el 1
	}

	resp, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, validRequest())
	require.NoError(t, err, "una carrera perdida debe resolverse con un reintento interno")

	assert.Equal(t, int64(2), resp.DocumentNumber, "el reintento toma el siguiente número libre")
	assert.Equal(t, 2, env.store.allocationReads, "una lectura por tentativa")
	assert.Len(t, env.store.orders, 1)
	assert.Equal(t, int64(2), env.store.counter.LatestNumberIssued)
}

// ──────────────────────────────────────────────────────────────────────────────
// Monotonicidad bajo concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// N emisores concurrentes contra el mismo contador: los correlativos asignados
// son exactamente {1..N}, sin huecos ni duplicados, y el contador termina en N.
func TestCreateSaleOrder_ConcurrenciaSinHuecosNiDuplicados(t *testing.T) {
	const n = 20
	env := newTestEnv(freshCounter(0, 100000))

	var wg sync.WaitGroup
	numbers := make([]int64, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, validRequest())
			if err != nil {
				errs[i] = err
				return
			}
			numbers[i] = resp.DocumentNumber
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "emisión %d no debe fallar", i)
	}

	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for i := 0; i < n; i++ {
		assert.Equal(t, int64(i+1), numbers[i],
			"los correlativos deben ser exactamente 1..N sin huecos ni duplicados")
	}
	assert.Equal(t, int64(n), env.store.counter.LatestNumberIssued)
	assert.Len(t, env.store.orders, n)
}

// La emisión sobre contadores distintos no se serializa entre sí a nivel de
// dominio; aquí solo verificamos que dos requests seguidos sobre el mismo
// contador producen números consecutivos.
func TestCreateSaleOrder_NumerosConsecutivos(t *testing.T) {
	env := newTestEnv(freshCounter(0, 100000))

	first, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, validRequest())
	require.NoError(t, err)
	second, err := env.uc.Create(context.Background(), fxOrgID, fxUserID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, first.DocumentNumber+1, second.DocumentNumber)
}
