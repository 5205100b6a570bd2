package sales_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fakeTxRunner serializa las transacciones con un mutex,
// igual que el bloqueo de fila FOR UPDATE serializa a los emisores del mismo
// contador. Las escrituras quedan en staging y solo se aplican al store si el
// callback retorna nil (commit); un error descarta todo (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu              sync.Mutex
	counter         *entity.SalePointDocumentType
	orders          []*entity.SaleOrder
	details         []*entity.SaleOrderDetail
	allocationReads int

	// afterAllocate simula un competidor que confirma entre la lectura y el
	// compare-and-swap. Se dispara una sola vez, bajo el mutex del store.
	afterAllocate func(s *fakeStore)

	// failDetails fuerza el fallo de la escritura de detalles para probar
	// la atomicidad de la transacción de emisión.
	failDetails bool
}

func (s *fakeStore) orderByID(id string) *entity.SaleOrder {
	for _, o := range s.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// fakeTxRunner implementa sales.SaleTxRunner sobre el fakeStore.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	orders repository.SaleOrderRepository,
	counters repository.SalePointDocumentTypeRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &fakeTx{store: s}
	if err := fn(&fakeTxOrderRepo{tx: tx}, &fakeTxCounterRepo{tx: tx}); err != nil {
		return err // rollback: el staging se descarta
	}
	// commit
	s.orders = append(s.orders, tx.stagedOrders...)
	s.details = append(s.details, tx.stagedDetails...)
	if tx.counterAdvanced {
		s.counter.LatestNumberIssued = tx.counterValue
	}
	return nil
}

type fakeTx struct {
	store           *fakeStore
	stagedOrders    []*entity.SaleOrder
	stagedDetails   []*entity.SaleOrderDetail
	counterAdvanced bool
	counterValue    int64
}

// fakeTxOrderRepo repositorio de órdenes atado a la tx.
type fakeTxOrderRepo struct {
	tx *fakeTx
}

func (r *fakeTxOrderRepo) Create(_ context.Context, order *entity.SaleOrder) error {
	cp := *order
	r.tx.stagedOrders = append(r.tx.stagedOrders, &cp)
	return nil
}

func (r *fakeTxOrderRepo) CreateDetails(_ context.Context, details []*entity.SaleOrderDetail) error {
	if r.tx.store.failDetails {
		return errors.New("insert sale_order_detail: fallo simulado")
	}
	for _, d := range details {
		cp := *d
		r.tx.stagedDetails = append(r.tx.stagedDetails, &cp)
	}
	return nil
}

func (r *fakeTxOrderRepo) GetByID(_ context.Context, id, _ string) (*entity.SaleOrder, error) {
	return r.tx.store.orderByID(id), nil
}

func (r *fakeTxOrderRepo) GetDetailsByOrderID(_ context.Context, orderID string) ([]*entity.SaleOrderDetail, error) {
	var out []*entity.SaleOrderDetail
	for _, d := range r.tx.store.details {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeTxOrderRepo) ListByOrganization(_ context.Context, _ string) ([]*entity.SaleOrder, error) {
	return r.tx.store.orders, nil
}

func (r *fakeTxOrderRepo) ListByClient(_ context.Context, _, _ string) ([]*entity.SaleOrder, error) {
	return nil, nil
}

func (r *fakeTxOrderRepo) ListBySalePoint(_ context.Context, _, _ string) ([]*entity.SaleOrder, error) {
	return nil, nil
}

func (r *fakeTxOrderRepo) ListByCreator(_ context.Context, _, _ string) ([]*entity.SaleOrder, error) {
	return nil, nil
}

func (r *fakeTxOrderRepo) MarkVoided(_ context.Context, id, _ string, reversalDate time.Time) error {
	o := r.tx.store.orderByID(id)
	if o == nil {
		return domain.ErrNotFound
	}
	o.Status = entity.OrderStatusVoided
	o.ReversalDate = &reversalDate
	return nil
}

// fakeTxCounterRepo repositorio de contadores atado a la tx.
type fakeTxCounterRepo struct {
	tx *fakeTx
}

func (r *fakeTxCounterRepo) Create(_ context.Context, c *entity.SalePointDocumentType) error {
	r.tx.store.counter = c
	return nil
}

func (r *fakeTxCounterRepo) GetByID(_ context.Context, id, _ string) (*entity.SalePointDocumentType, error) {
	if r.tx.store.counter != nil && r.tx.store.counter.ID == id {
		cp := *r.tx.store.counter
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTxCounterRepo) GetBySalePointAndDocumentType(_ context.Context, salePointID, documentTypeID, _ string) (*entity.SalePointDocumentType, error) {
	c := r.tx.store.counter
	if c != nil && c.SalePointID == salePointID && c.DocumentTypeID == documentTypeID {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTxCounterRepo) ListByOrganization(_ context.Context, _ string) ([]*entity.SalePointDocumentType, error) {
	if r.tx.store.counter == nil {
		return nil, nil
	}
	return []*entity.SalePointDocumentType{r.tx.store.counter}, nil
}

func (r *fakeTxCounterRepo) ListBySalePoint(_ context.Context, _, _ string) ([]*entity.SalePointDocumentType, error) {
	return r.ListByOrganization(context.Background(), "")
}

func (r *fakeTxCounterRepo) Update(_ context.Context, c *entity.SalePointDocumentType) error {
	r.tx.store.counter = c
	return nil
}

func (r *fakeTxCounterRepo) GetForAllocation(_ context.Context, salePointID, documentTypeID, _ string) (*entity.SalePointDocumentType, error) {
	s := r.tx.store
	s.allocationReads++
	c := s.counter
	if c == nil || c.SalePointID != salePointID || c.DocumentTypeID != documentTypeID {
		return nil, nil
	}
	cp := *c
	if s.afterAllocate != nil {
		hook := s.afterAllocate
		s.afterAllocate = nil
		hook(s)
	}
	return &cp, nil
}

func (r *fakeTxCounterRepo) CommitAdvance(_ context.Context, id string, expected, candidate int64) error {
	c := r.tx.store.counter
	if c == nil || c.ID != id {
		return domain.ErrNotFound
	}
	if c.LatestNumberIssued != expected {
		return domain.ErrConcurrentModification
	}
	r.tx.counterAdvanced = true
	r.tx.counterValue = candidate
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de catálogo para el validador.
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct{ ids map[string]bool }

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.ids[c.ID] = true
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id, _ string) (*entity.Client, error) {
	if !r.ids[id] {
		return nil, nil
	}
	return &entity.Client{ID: id, Name: "Cliente " + id}, nil
}

func (r *fakeClientRepo) Exists(_ context.Context, id, _ string) (bool, error) {
	return r.ids[id], nil
}

type fakeSalePointRepo struct{ points map[string]*entity.SalePoint }

func (r *fakeSalePointRepo) Create(_ context.Context, sp *entity.SalePoint) error {
	r.points[sp.ID] = sp
	return nil
}

func (r *fakeSalePointRepo) GetByID(_ context.Context, id, _ string) (*entity.SalePoint, error) {
	return r.points[id], nil
}

type fakeDocumentTypeRepo struct{ ids map[string]bool }

func (r *fakeDocumentTypeRepo) Create(_ context.Context, dt *entity.DocumentType) error {
	r.ids[dt.ID] = true
	return nil
}

func (r *fakeDocumentTypeRepo) Exists(_ context.Context, id, _ string) (bool, error) {
	return r.ids[id], nil
}

type fakePaymentTermRepo struct{ ids map[string]bool }

func (r *fakePaymentTermRepo) Create(_ context.Context, pt *entity.PaymentTerm) error {
	r.ids[pt.ID] = true
	return nil
}

func (r *fakePaymentTermRepo) Exists(_ context.Context, id, _ string) (bool, error) {
	return r.ids[id], nil
}

type fakePaymentFormRepo struct{ ids map[string]bool }

func (r *fakePaymentFormRepo) Create(_ context.Context, pf *entity.PaymentForm) error {
	r.ids[pf.ID] = true
	return nil
}

func (r *fakePaymentFormRepo) Exists(_ context.Context, id, _ string) (bool, error) {
	return r.ids[id], nil
}

type fakeArticleRepo struct{ articles map[string]*entity.Article }

func (r *fakeArticleRepo) Create(_ context.Context, a *entity.Article) error {
	r.articles[a.ID] = a
	return nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id, _ string) (*entity.Article, error) {
	return r.articles[id], nil
}

type fakeUserRepo struct {
	access map[string]bool // "userID|salePointID"
}

func (r *fakeUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndOrganization(_ context.Context, _, _ string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) HasSalePointAccess(_ context.Context, userID, salePointID string) (bool, error) {
	return r.access[userID+"|"+salePointID], nil
}

func (r *fakeUserRepo) GrantSalePointAccess(_ context.Context, userID, salePointID string) error {
	r.access[userID+"|"+salePointID] = true
	return nil
}
