package counting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake store en memoria con semántica transaccional (snapshot + rollback)
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products  map[string]*entity.Product
	items     map[string]*entity.CountItem
	movements []*entity.Movement
	seq       int

	// failSetQuantityOn hace fallar la N-ésima llamada a SetQuantity (1-based)
	// para probar el rollback de finalize. Cero desactiva el fallo.
	failSetQuantityOn int
	setQuantityCalls  int
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{
		products: make(map[string]*entity.Product),
		items:    make(map[string]*entity.CountItem),
	}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *fakeStore) nextID() string {
	s.seq++
	return fmt.Sprintf("fake-%d", s.seq)
}

type fakeSnapshot struct {
	products  map[string]*entity.Product
	items     map[string]*entity.CountItem
	movements []*entity.Movement
}

func (s *fakeStore) snapshot() fakeSnapshot {
	snap := fakeSnapshot{
		products:  make(map[string]*entity.Product, len(s.products)),
		items:     make(map[string]*entity.CountItem, len(s.items)),
		movements: append([]*entity.Movement(nil), s.movements...),
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, it := range s.items {
		cp := *it
		snap.items[id] = &cp
	}
	return snap
}

func (s *fakeStore) restore(snap fakeSnapshot) {
	s.products = snap.products
	s.items = snap.items
	s.movements = snap.movements
}

// InTx ejecuta fn sobre el mismo estado y lo restaura si fn falla, imitando
// el commit/rollback del almacén real.
func (s *fakeStore) InTx(_ context.Context, fn func(tx repository.TxStore) error) error {
	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *fakeStore) Products() repository.ProductRepository     { return &fakeProducts{s} }
func (s *fakeStore) Movements() repository.MovementRepository   { return &fakeMovements{s} }
func (s *fakeStore) CountItems() repository.CountItemRepository { return &fakeCountItems{s} }
func (s *fakeStore) Users() repository.UserRepository           { return nil }
func (s *fakeStore) Companies() repository.CompanyRepository    { return nil }
func (s *fakeStore) Dashboard() repository.DashboardRepository  { return nil }

type fakeResolver struct{ store *fakeStore }

func (r *fakeResolver) StoreFor(_ context.Context, _ string) (repository.Store, error) {
	return r.store, nil
}

// ── Productos ────────────────────────────────────────────────────────────────

type fakeProducts struct{ s *fakeStore }

func (r *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProducts) GetByID(_ context.Context, _, id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProducts) GetByCode(_ context.Context, _, code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProducts) FindByIdentifier(_ context.Context, _, identifier, altIdentifier string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if !p.Active {
			continue
		}
		if p.Barcode == identifier || p.Barcode == altIdentifier || p.Code == identifier || p.Code == altIdentifier {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProducts) SetQuantity(_ context.Context, _, productID string, quantity decimal.Decimal) error {
	r.s.setQuantityCalls++
	if r.s.failSetQuantityOn > 0 && r.s.setQuantityCalls == r.s.failSetQuantityOn {
		return errors.New("disco lleno")
	}
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProducts) Deactivate(_ context.Context, _, id string) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}

func (r *fakeProducts) ListByCompany(_ context.Context, _, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type fakeMovements struct{ s *fakeStore }

func (r *fakeMovements) Create(_ context.Context, m *entity.Movement) error {
	cp := *m
	if cp.ID == "" {
		cp.ID = r.s.nextID()
	}
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovements) ListByCompany(_ context.Context, _ string, _ int) ([]*entity.MovementWithDetails, error) {
	return nil, nil
}

// ── Items del conteo ─────────────────────────────────────────────────────────

type fakeCountItems struct{ s *fakeStore }

func (r *fakeCountItems) GetByProductForUpdate(_ context.Context, companyID, productID string) (*entity.CountItem, error) {
	for _, it := range r.s.items {
		if it.CompanyID == companyID && it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCountItems) Create(_ context.Context, item *entity.CountItem) error {
	cp := *item
	if cp.ID == "" {
		cp.ID = r.s.nextID()
	}
	r.s.items[cp.ID] = &cp
	return nil
}

func (r *fakeCountItems) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal) error {
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.RegisteredAt = time.Now()
	return nil
}

func (r *fakeCountItems) Delete(_ context.Context, id string) error {
	delete(r.s.items, id)
	return nil
}

func (r *fakeCountItems) ListByCompany(_ context.Context, companyID string) ([]*entity.CountItem, error) {
	var out []*entity.CountItem
	for _, it := range r.s.items {
		if it.CompanyID == companyID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCountItems) ListWithProducts(_ context.Context, companyID string) ([]*entity.CountItemWithProduct, error) {
	items, _ := r.ListByCompany(nil, companyID)
	out := make([]*entity.CountItemWithProduct, 0, len(items))
	for _, it := range items {
		p := r.s.products[it.ProductID]
		out = append(out, &entity.CountItemWithProduct{
			CountItem:          *it,
			ProductCode:        p.Code,
			ProductDescription: p.Description,
			ProductUnit:        p.Unit,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}

func (r *fakeCountItems) DeleteByCompany(_ context.Context, companyID string) error {
	for id, it := range r.s.items {
		if it.CompanyID == companyID {
			delete(r.s.items, id)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testCompany = "empresa-1"

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func testProduct(id, code, barcode string) *entity.Product {
	return &entity.Product{
		ID:          id,
		CompanyID:   testCompany,
		Code:        code,
		Barcode:     barcode,
		Description: "Producto " + code,
		Unit:        "UN",
		Quantity:    decimal.NewFromInt(10),
		Active:      true,
	}
}

func qty(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Accumulate
// ──────────────────────────────────────────────────────────────────────────────

func TestAccumulate_CreaItemNuevo(t *testing.T) {
	store := newFakeStore(testProduct("p1", "100", "7891234567895"))
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	result, err := uc.Accumulate(context.Background(), testCompany, "100", qty("2"))
	require.NoError(t, err)

	assert.Equal(t, "p1", result.Product.ID)
	assert.Equal(t, "100", result.Product.Code)
	assert.False(t, result.Removed)

	require.Len(t, store.items, 1)
	for _, it := range store.items {
		assert.True(t, qty("2").Equal(it.Quantity))
		assert.Equal(t, "p1", it.ProductID)
	}
}

func TestAccumulate_SumaAlItemExistente(t *testing.T) {
	store := newFakeStore(testProduct("p1", "100", ""))
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	_, err := uc.Accumulate(context.Background(), testCompany, "100", qty("2"))
	require.NoError(t, err)
	_, err = uc.Accumulate(context.Background(), testCompany, "100", qty("3.5"))
	require.NoError(t, err)

	require.Len(t, store.items, 1, "escaneos del mismo producto acumulan en una sola fila")
	for _, it := range store.items {
		assert.True(t, qty("5.5").Equal(it.Quantity))
	}
}

func TestAccumulate_ResuelvePorCodigoDeBarrasAlterno(t *testing.T) {
	// Catálogo con el EAN guardado sin dígito verificador (12 dígitos)
	store := newFakeStore(testProduct("p1", "100", "789123456789"))
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	result, err := uc.Accumulate(context.Background(), testCompany, "7891234567895", qty("1"))
	require.NoError(t, err)
	assert.Equal(t, "p1", result.Product.ID)
}

func TestAccumulate_DeltaCero_ResuelveSinEscribir(t *testing.T) {
	store := newFakeStore(testProduct("p1", "100", ""))
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	result, err := uc.Accumulate(context.Background(), testCompany, "100", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "p1", result.Product.ID)
	assert.Empty(t, store.items, "delta cero no debe crear item")
}

func TestAccumulate_NegativoLlevaACero_RemueveItem(t *testing.T) {
	store := newFakeStore(testProduct("p1", "100", ""))
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	_, err := uc.Accumulate(context.Background(), testCompany, "100", qty("2"))
	require.NoError(t, err)

	result, err := uc.Accumulate(context.Background(), testCompany, "100", qty("-2"))
	require.NoError(t, err)
	assert.True(t, result.Removed, "llegar a cero debe reportar removed")
	assert.Empty(t, store.items)
}

func TestAccumulate_PositivoTrasRemocion_CreaItemFresco(t *testing.T) {
	store := newFakeStore(testProduct("p1", "100", ""))
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	_, err := uc.Accumulate(context.Background(), testCompany, "100", qty("2"))
	require.NoError(t, err)
	_, err = uc.Accumulate(context.Background(), testCompany, "100", qty("-5"))
	require.NoError(t, err)

	// El item nuevo arranca en el delta positivo, no retoma el saldo negativo
	_, err = uc.Accumulate(context.Background(), testCompany, "100", qty("3"))
	require.NoError(t, err)
	require.Len(t, store.items, 1)
	for _, it := range store.items {
		assert.True(t, qty("3").Equal(it.Quantity))
	}
}

func TestAccumulate_NegativoSinItem_EsNoOp(t *testing.T) {
	store := newFakeStore(testProduct("p1", "100", ""))
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	result, err := uc.Accumulate(context.Background(), testCompany, "100", qty("-1"))
	require.NoError(t, err)
	assert.False(t, result.Removed)
	assert.Empty(t, store.items, "quitar sin item en curso no escribe nada")
}

func TestAccumulate_ProductoInexistente_ConservaIdentificadorOriginal(t *testing.T) {
	store := newFakeStore()
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	raw := " 99-88 " // se normaliza a 9988, pero el error debe traer el original
	_, err := uc.Accumulate(context.Background(), testCompany, raw, qty("1"))

	var pnf *domain.ProductNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, raw, pnf.Identifier)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccumulate_IdentificadorSinDigitos_EsInvalido(t *testing.T) {
	store := newFakeStore()
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	_, err := uc.Accumulate(context.Background(), testCompany, "ABC-XYZ", qty("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListStaged
// ──────────────────────────────────────────────────────────────────────────────

func TestListStaged_VacioDevuelveListaVacia(t *testing.T) {
	store := newFakeStore()
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	items, err := uc.ListStaged(context.Background(), testCompany)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListStaged_IncluyeDatosDelProducto(t *testing.T) {
	store := newFakeStore(testProduct("p1", "100", ""))
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	_, err := uc.Accumulate(context.Background(), testCompany, "100", qty("4"))
	require.NoError(t, err)

	items, err := uc.ListStaged(context.Background(), testCompany)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "100", items[0].ProductCode)
	assert.Equal(t, "Producto 100", items[0].ProductDescription)
	assert.Equal(t, "UN", items[0].ProductUnit)
	assert.True(t, qty("4").Equal(items[0].Quantity))
}

// ──────────────────────────────────────────────────────────────────────────────
// Finalize
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalize_PromueveCantidadesYVaciaStaging(t *testing.T) {
	store := newFakeStore(
		testProduct("p1", "100", ""),
		testProduct("p2", "200", ""),
	)
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	_, err := uc.Accumulate(context.Background(), testCompany, "100", qty("7"))
	require.NoError(t, err)
	_, err = uc.Accumulate(context.Background(), testCompany, "200", qty("0.5"))
	require.NoError(t, err)

	total, err := uc.Finalize(context.Background(), testCompany, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// La cantidad contada es absoluta, no un delta sobre la existencia previa
	assert.True(t, qty("7").Equal(store.products["p1"].Quantity))
	assert.True(t, qty("0.5").Equal(store.products["p2"].Quantity))

	assert.Empty(t, store.items, "finalize debe vaciar el staging")

	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementTypeCount, m.Type)
		require.NotNil(t, m.UserID)
		assert.Equal(t, "user-1", *m.UserID)
	}
}

func TestFinalize_SinItems_RetornaErrEmptyCount(t *testing.T) {
	store := newFakeStore()
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	_, err := uc.Finalize(context.Background(), testCompany, "user-1")
	assert.ErrorIs(t, err, domain.ErrEmptyCount)
	assert.NotErrorIs(t, err, domain.ErrTransactionFailed,
		"conteo vacío es un fallo esperado, no un fallo de transacción")
}

func TestFinalize_FalloAMitadDeLote_RevierteTodo(t *testing.T) {
	store := newFakeStore(
		testProduct("p1", "100", ""),
		testProduct("p2", "200", ""),
	)
	uc := NewUseCase(&fakeResolver{store}, testLogger())

	_, err := uc.Accumulate(context.Background(), testCompany, "100", qty("3"))
	require.NoError(t, err)
	_, err = uc.Accumulate(context.Background(), testCompany, "200", qty("4"))
	require.NoError(t, err)

	store.failSetQuantityOn = 2 // el segundo SetQuantity del finalize falla

	_, err = uc.Finalize(context.Background(), testCompany, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)

	// Nada del lote debe haberse aplicado
	assert.True(t, qty("10").Equal(store.products["p1"].Quantity),
		"la existencia del primer producto debe revertirse")
	assert.True(t, qty("10").Equal(store.products["p2"].Quantity))
	assert.Len(t, store.items, 2, "el staging debe conservarse intacto")
	assert.Empty(t, store.movements, "no debe quedar ningún movimiento del lote fallido")
}
