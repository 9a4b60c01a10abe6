package transfer_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/transfer"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia.
//
// memStore emula la base de datos; fakeTxRunner emula la transacción con el
// bloqueo de cabecera: un mutex serializa cada Run (como el SELECT FOR UPDATE
// sobre la fila del traslado) y un snapshot del estado se restaura si el
// callback falla (como el ROLLBACK).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	transfers  map[string]*entity.StockTransfer
	movements  []*entity.StockMovement
	products   map[string]*entity.Product
	variants   map[string]*entity.ProductVariant
	warehouses map[string]*entity.Warehouse
	shops      map[string]*entity.Shop
	users      map[string]*entity.User
}

func newMemStore() *memStore {
	return &memStore{
		transfers:  make(map[string]*entity.StockTransfer),
		products:   make(map[string]*entity.Product),
		variants:   make(map[string]*entity.ProductVariant),
		warehouses: make(map[string]*entity.Warehouse),
		shops:      make(map[string]*entity.Shop),
		users:      make(map[string]*entity.User),
	}
}

func cloneTransfer(t *entity.StockTransfer) *entity.StockTransfer {
	if t == nil {
		return nil
	}
	c := *t
	c.Items = make([]*entity.StockTransferItem, len(t.Items))
	for i, it := range t.Items {
		ci := *it
		c.Items[i] = &ci
	}
	return &c
}

type storeSnapshot struct {
	transfers map[string]*entity.StockTransfer
	movements []*entity.StockMovement
}

func (s *memStore) snapshot() storeSnapshot {
	snap := storeSnapshot{transfers: make(map[string]*entity.StockTransfer, len(s.transfers))}
	for id, t := range s.transfers {
		snap.transfers[id] = cloneTransfer(t)
	}
	snap.movements = append([]*entity.StockMovement(nil), s.movements...)
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	s.transfers = snap.transfers
	s.movements = snap.movements
}

// ── StockTransferRepository ───────────────────────────────────────────────────

type fakeTransferRepo struct{ s *memStore }

var _ repository.StockTransferRepository = (*fakeTransferRepo)(nil)

func (r *fakeTransferRepo) Create(t *entity.StockTransfer) error {
	r.s.transfers[t.ID] = cloneTransfer(t)
	return nil
}

func (r *fakeTransferRepo) GetByID(id string, _ bool) (*entity.StockTransfer, error) {
	t, ok := r.s.transfers[id]
	if !ok || t.DeletedAt != nil {
		return nil, nil
	}
	return cloneTransfer(t), nil
}

func (r *fakeTransferRepo) GetByIDForUpdate(id string) (*entity.StockTransfer, error) {
	return r.GetByID(id, true)
}

func (r *fakeTransferRepo) UpdateHeader(t *entity.StockTransfer) error {
	cur, ok := r.s.transfers[t.ID]
	if !ok || cur.DeletedAt != nil {
		return domain.ErrNotFound
	}
	c := *t
	c.Items = cur.Items
	r.s.transfers[t.ID] = &c
	return nil
}

func (r *fakeTransferRepo) UpdateItemQuantities(item *entity.StockTransferItem) error {
	cur, ok := r.s.transfers[item.TransferID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, it := range cur.Items {
		if it.ID == item.ID {
			ci := *item
			cur.Items[i] = &ci
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeTransferRepo) ReplaceItems(transferID string, items []*entity.StockTransferItem) error {
	cur, ok := r.s.transfers[transferID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Items = make([]*entity.StockTransferItem, len(items))
	for i, it := range items {
		ci := *it
		cur.Items[i] = &ci
	}
	return nil
}

func (r *fakeTransferRepo) SoftDelete(id string, deletedAt time.Time) error {
	cur, ok := r.s.transfers[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.DeletedAt = &deletedAt
	return nil
}

func (r *fakeTransferRepo) List(filter repository.TransferFilter) ([]*entity.StockTransfer, error) {
	var out []*entity.StockTransfer
	for _, t := range r.s.transfers {
		if t.DeletedAt != nil {
			continue
		}
		if !matchesFilter(t, filter) {
			continue
		}
		out = append(out, cloneTransfer(t))
	}
	return out, nil
}

func (r *fakeTransferRepo) Count(filter repository.TransferFilter) (int, error) {
	list, _ := r.List(filter)
	return len(list), nil
}

func (r *fakeTransferRepo) ExistsNumber(number string) (bool, error) {
	for _, t := range r.s.transfers {
		if t.TransferNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func matchesFilter(t *entity.StockTransfer, f repository.TransferFilter) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.RequestedBy != "" && t.RequestedByUserID != f.RequestedBy {
		return false
	}
	if f.Search != "" &&
		!strings.Contains(t.TransferNumber, f.Search) &&
		!strings.Contains(t.Notes, f.Search) {
		return false
	}
	return true
}

// ── StockMovementRepository ───────────────────────────────────────────────────

// fakeMovementRepo registra asientos; failAt > 0 hace fallar el asiento
// n-ésimo, para provocar rollbacks en los tests de atomicidad.
type fakeMovementRepo struct {
	s      *memStore
	failAt int
	count  int
}

// errLedgerDown error inyectado para simular la caída del ledger a mitad de lote.
var errLedgerDown = errors.New("ledger no disponible")

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.count++
	if r.failAt > 0 && r.count >= r.failAt {
		return errLedgerDown
	}
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *fakeMovementRepo) ListByReference(refType, refID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ReferenceType == refType && m.ReferenceID == refID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByLocation(kind, id string, _, _ *time.Time, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.LocationKind == kind && m.LocationID == id {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── Repos de catálogo ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	return p, nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku && p.DeletedAt == nil {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(_, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeProductRepo) SoftDelete(id string) error {
	if p, ok := r.s.products[id]; ok {
		now := time.Now()
		p.DeletedAt = &now
	}
	return nil
}

type fakeVariantRepo struct{ s *memStore }

var _ repository.ProductVariantRepository = (*fakeVariantRepo)(nil)

func (r *fakeVariantRepo) Create(v *entity.ProductVariant) error { r.s.variants[v.ID] = v; return nil }
func (r *fakeVariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	v, ok := r.s.variants[id]
	if !ok || v.DeletedAt != nil {
		return nil, nil
	}
	return v, nil
}
func (r *fakeVariantRepo) ListByProduct(productID string) ([]*entity.ProductVariant, error) {
	var out []*entity.ProductVariant
	for _, v := range r.s.variants {
		if v.ProductID == productID && v.DeletedAt == nil {
			out = append(out, v)
		}
	}
	return out, nil
}
func (r *fakeVariantRepo) Update(v *entity.ProductVariant) error { r.s.variants[v.ID] = v; return nil }
func (r *fakeVariantRepo) SoftDelete(id string) error {
	if v, ok := r.s.variants[id]; ok {
		now := time.Now()
		v.DeletedAt = &now
	}
	return nil
}

type fakeWarehouseRepo struct{ s *memStore }

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.s.warehouses[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok || w.DeletedAt != nil {
		return nil, nil
	}
	return w, nil
}
func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error { r.s.warehouses[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) List(_, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.DeletedAt == nil {
			out = append(out, w)
		}
	}
	return out, nil
}
func (r *fakeWarehouseRepo) SoftDelete(id string) error {
	if w, ok := r.s.warehouses[id]; ok {
		now := time.Now()
		w.DeletedAt = &now
	}
	return nil
}

type fakeShopRepo struct{ s *memStore }

var _ repository.ShopRepository = (*fakeShopRepo)(nil)

func (r *fakeShopRepo) Create(sh *entity.Shop) error { r.s.shops[sh.ID] = sh; return nil }
func (r *fakeShopRepo) GetByID(id string) (*entity.Shop, error) {
	sh, ok := r.s.shops[id]
	if !ok || sh.DeletedAt != nil {
		return nil, nil
	}
	return sh, nil
}
func (r *fakeShopRepo) Update(sh *entity.Shop) error { r.s.shops[sh.ID] = sh; return nil }
func (r *fakeShopRepo) List(_, _ int) ([]*entity.Shop, error) {
	var out []*entity.Shop
	for _, sh := range r.s.shops {
		if sh.DeletedAt == nil {
			out = append(out, sh)
		}
	}
	return out, nil
}
func (r *fakeShopRepo) SoftDelete(id string) error {
	if sh, ok := r.s.shops[id]; ok {
		now := time.Now()
		sh.DeletedAt = &now
	}
	return nil
}

type fakeUserRepo struct{ s *memStore }

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(u *entity.User) error { r.s.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.s.users[u.ID] = u; return nil }
func (r *fakeUserRepo) List(_, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return out, nil
}
func (r *fakeUserRepo) Delete(id string) error { delete(r.s.users, id); return nil }

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	s   *memStore
	mov *fakeMovementRepo
}

var _ transfer.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.StockTransferRepository,
	repository.StockMovementRepository,
	repository.ProductRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	err := fn(&fakeTransferRepo{s: r.s}, r.mov, &fakeProductRepo{s: r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

// ── Generador PDF ─────────────────────────────────────────────────────────────

type fakePDFGenerator struct {
	lastData *transfer.DispatchNoteData
}

var _ transfer.DispatchNotePDFGenerator = (*fakePDFGenerator)(nil)

func (g *fakePDFGenerator) GenerateDispatchNote(_ context.Context, data *transfer.DispatchNoteData) ([]byte, error) {
	g.lastData = data
	return []byte("%PDF-1.7 fake"), nil
}
