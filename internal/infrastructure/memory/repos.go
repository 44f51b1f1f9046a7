package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/application/ledger"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
)

// Repos construye el paquete de repositorios sobre el store.
func Repos(s *Store) ledger.Repos {
	return ledger.Repos{
		Movements:   &MovementRepo{s},
		Stock:       &StockRepo{s},
		Products:    &ProductRepo{s},
		Sales:       &SaleRepo{s},
		Orders:      &OrderRepo{s},
		Receipts:    &ReceiptRepo{s},
		Transfers:   &TransferRepo{s},
		CreditNotes: &NoteRepo{s},
		Sessions:    &SessionRepo{s},
	}
}

// TxRunner fake: ejecuta fn sobre el store y, si falla, restaura el snapshot
// previo (mismas garantías de atomicidad que la transacción real).
type TxRunner struct {
	S *Store
}

var _ ledger.TxRunner = (*TxRunner)(nil)

func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.Repos) error) error {
	snap := r.S.clone()
	if err := fn(Repos(r.S)); err != nil {
		r.S.restore(snap)
		return err
	}
	return nil
}

// ── Tenant ────────────────────────────────────────────────────────────────

type TenantRepo struct{ S *Store }

var _ repository.TenantRepository = (*TenantRepo)(nil)

func (r *TenantRepo) Create(t *entity.Tenant) error {
	if _, ok := r.S.Tenants[t.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *t
	r.S.Tenants[t.ID] = &c
	return nil
}

func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	if t, ok := r.S.Tenants[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (r *TenantRepo) Update(t *entity.Tenant) error {
	c := *t
	r.S.Tenants[t.ID] = &c
	return nil
}

func (r *TenantRepo) List(limit, offset int) ([]*entity.Tenant, error) {
	var list []*entity.Tenant
	for _, t := range r.S.Tenants {
		c := *t
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// ── User ──────────────────────────────────────────────────────────────────

type UserRepo struct{ S *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(u *entity.User) error {
	for _, x := range r.S.Users {
		if x.Email == u.Email && x.TenantID == u.TenantID {
			return domain.ErrDuplicate
		}
	}
	c := *u
	r.S.Users[u.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.S.Users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.S.Users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmailAndTenant(email, tenantID string) (*entity.User, error) {
	for _, u := range r.S.Users {
		if u.Email == email && u.TenantID == tenantID {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(u *entity.User) error {
	c := *u
	r.S.Users[u.ID] = &c
	return nil
}

func (r *UserRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.User, error) {
	var list []*entity.User
	for _, u := range r.S.Users {
		if u.TenantID == tenantID {
			c := *u
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// ── Customer ──────────────────────────────────────────────────────────────

type CustomerRepo struct{ S *Store }

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func (r *CustomerRepo) Create(c *entity.Customer) error {
	cc := *c
	r.S.Customers[c.ID] = &cc
	return nil
}

func (r *CustomerRepo) GetByID(tenantID, id string) (*entity.Customer, error) {
	if c, ok := r.S.Customers[id]; ok && c.TenantID == tenantID {
		cc := *c
		return &cc, nil
	}
	return nil, nil
}

func (r *CustomerRepo) GetByEmail(tenantID, email string) (*entity.Customer, error) {
	for _, c := range r.S.Customers {
		if c.TenantID == tenantID && c.Email == email {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) Update(c *entity.Customer) error {
	cc := *c
	r.S.Customers[c.ID] = &cc
	return nil
}

func (r *CustomerRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error) {
	var list []*entity.Customer
	for _, c := range r.S.Customers {
		if c.TenantID == tenantID {
			cc := *c
			list = append(list, &cc)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// ── Supplier ──────────────────────────────────────────────────────────────

type SupplierRepo struct{ S *Store }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(s *entity.Supplier) error {
	c := *s
	r.S.Suppliers[s.ID] = &c
	return nil
}

func (r *SupplierRepo) GetByID(tenantID, id string) (*entity.Supplier, error) {
	if s, ok := r.S.Suppliers[id]; ok && s.TenantID == tenantID {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (r *SupplierRepo) Update(s *entity.Supplier) error {
	c := *s
	r.S.Suppliers[s.ID] = &c
	return nil
}

func (r *SupplierRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Supplier, error) {
	var list []*entity.Supplier
	for _, s := range r.S.Suppliers {
		if s.TenantID == tenantID {
			c := *s
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

// ── Product ───────────────────────────────────────────────────────────────

type ProductRepo struct{ S *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(p *entity.Product) error {
	for _, x := range r.S.Products {
		if x.TenantID == p.TenantID && x.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	c := *p
	r.S.Products[p.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(tenantID, id string) (*entity.Product, error) {
	if p, ok := r.S.Products[id]; ok && p.TenantID == tenantID {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySKU(tenantID, sku string) (*entity.Product, error) {
	for _, p := range r.S.Products {
		if p.TenantID == tenantID && p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	c := *p
	r.S.Products[p.ID] = &c
	return nil
}

func (r *ProductRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.S.Products {
		if p.TenantID == tenantID {
			c := *p
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

func (r *ProductRepo) Delete(tenantID, id string) error {
	if p, ok := r.S.Products[id]; ok && p.TenantID == tenantID {
		delete(r.S.Products, id)
	}
	return nil
}

// ── Warehouse ─────────────────────────────────────────────────────────────

type WarehouseRepo struct{ S *Store }

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	c := *w
	r.S.Warehouses[w.ID] = &c
	return nil
}

func (r *WarehouseRepo) GetByID(tenantID, id string) (*entity.Warehouse, error) {
	if w, ok := r.S.Warehouses[id]; ok && w.TenantID == tenantID {
		c := *w
		return &c, nil
	}
	return nil, nil
}

func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	c := *w
	r.S.Warehouses[w.ID] = &c
	return nil
}

func (r *WarehouseRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.S.Warehouses {
		if w.TenantID == tenantID {
			c := *w
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

func (r *WarehouseRepo) Delete(tenantID, id string) error {
	if w, ok := r.S.Warehouses[id]; ok && w.TenantID == tenantID {
		delete(r.S.Warehouses, id)
	}
	return nil
}

// ── Stock ─────────────────────────────────────────────────────────────────

type StockRepo struct{ S *Store }

var _ repository.StockRepository = (*StockRepo)(nil)

func (r *StockRepo) Get(tenantID, productID, warehouseID string) (*entity.Stock, error) {
	if st, ok := r.S.Stocks[stockKey(tenantID, productID, warehouseID)]; ok {
		c := *st
		return &c, nil
	}
	return &entity.Stock{TenantID: tenantID, ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (r *StockRepo) GetForUpdate(tenantID, productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(tenantID, productID, warehouseID)
}

func (r *StockRepo) Upsert(st *entity.Stock) error {
	c := *st
	r.S.Stocks[stockKey(st.TenantID, st.ProductID, st.WarehouseID)] = &c
	return nil
}

// ── LedgerMovement ────────────────────────────────────────────────────────

type MovementRepo struct{ S *Store }

var _ repository.LedgerMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(m *entity.LedgerMovement) error {
	c := *m
	r.S.Movements = append(r.S.Movements, &c)
	return nil
}

func (r *MovementRepo) GetByID(tenantID, id string) (*entity.LedgerMovement, error) {
	for _, m := range r.S.Movements {
		if m.TenantID == tenantID && m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) ListByProductAndWarehouse(tenantID, productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerMovement, error) {
	return r.list(func(m *entity.LedgerMovement) bool {
		return m.TenantID == tenantID && m.ProductID == productID && m.WarehouseID == warehouseID && inRange(m.CreatedAt, from, to)
	}, limit, offset), nil
}

func (r *MovementRepo) ListByWarehouse(tenantID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerMovement, error) {
	return r.list(func(m *entity.LedgerMovement) bool {
		return m.TenantID == tenantID && m.WarehouseID == warehouseID && inRange(m.CreatedAt, from, to)
	}, limit, offset), nil
}

func (r *MovementRepo) list(match func(*entity.LedgerMovement) bool, limit, offset int) []*entity.LedgerMovement {
	var list []*entity.LedgerMovement
	for _, m := range r.S.Movements {
		if match(m) {
			c := *m
			list = append(list, &c)
		}
	}
	return paginate(list, limit, offset)
}

// ── Sale ──────────────────────────────────────────────────────────────────

type SaleRepo struct{ S *Store }

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) Create(s *entity.Sale) error {
	c := cloneSale(s)
	r.S.Sales[s.ID] = c
	return nil
}

func (r *SaleRepo) GetByID(tenantID, id string) (*entity.Sale, error) {
	if s, ok := r.S.Sales[id]; ok && s.TenantID == tenantID {
		return cloneSale(s), nil
	}
	return nil, nil
}

func (r *SaleRepo) GetByIDForUpdate(tenantID, id string) (*entity.Sale, error) {
	return r.GetByID(tenantID, id)
}

func (r *SaleRepo) Update(s *entity.Sale) error {
	existing, ok := r.S.Sales[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneSale(s)
	c.Payments = append([]entity.SalePayment(nil), existing.Payments...)
	r.S.Sales[s.ID] = c
	return nil
}

func (r *SaleRepo) AddPayment(p *entity.SalePayment) error {
	s, ok := r.S.Sales[p.SaleID]
	if !ok {
		return domain.ErrNotFound
	}
	s.Payments = append(s.Payments, *p)
	return nil
}

func (r *SaleRepo) ListByTenant(tenantID string, f repository.SaleFilters) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for _, s := range r.S.Sales {
		if s.TenantID != tenantID {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.SessionID != "" && (s.SessionID == nil || *s.SessionID != f.SessionID) {
			continue
		}
		list = append(list, cloneSale(s))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *SaleRepo) SumPaidBySession(sessionID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.S.Sales {
		if s.Status == entity.SalePagada && s.SessionID != nil && *s.SessionID == sessionID {
			total = total.Add(s.Total)
		}
	}
	return total, nil
}

func cloneSale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Lines = append([]entity.SaleLine(nil), s.Lines...)
	c.Payments = append([]entity.SalePayment(nil), s.Payments...)
	return &c
}

// ── PurchaseOrder ─────────────────────────────────────────────────────────

type OrderRepo struct{ S *Store }

var _ repository.PurchaseOrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(o *entity.PurchaseOrder) error {
	r.S.Orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepo) GetByID(tenantID, id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.S.Orders[id]; ok && o.TenantID == tenantID {
		return cloneOrder(o), nil
	}
	return nil, nil
}

func (r *OrderRepo) GetByIDForUpdate(tenantID, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(tenantID, id)
}

func (r *OrderRepo) Update(o *entity.PurchaseOrder) error {
	existing, ok := r.S.Orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *o
	c.Lines = append([]entity.PurchaseOrderLine(nil), existing.Lines...)
	r.S.Orders[o.ID] = &c
	return nil
}

func (r *OrderRepo) UpdateLine(l *entity.PurchaseOrderLine) error {
	o, ok := r.S.Orders[l.OrderID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range o.Lines {
		if o.Lines[i].ID == l.ID {
			o.Lines[i] = *l
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *OrderRepo) ListByTenant(tenantID string, status entity.PurchaseOrderStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var list []*entity.PurchaseOrder
	for _, o := range r.S.Orders {
		if o.TenantID != tenantID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		list = append(list, cloneOrder(o))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

func cloneOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *o
	c.Lines = append([]entity.PurchaseOrderLine(nil), o.Lines...)
	return &c
}

// ── GoodsReceipt ──────────────────────────────────────────────────────────

type ReceiptRepo struct{ S *Store }

var _ repository.GoodsReceiptRepository = (*ReceiptRepo)(nil)

func (r *ReceiptRepo) Create(gr *entity.GoodsReceipt) error {
	c := *gr
	c.Lines = append([]entity.GoodsReceiptLine(nil), gr.Lines...)
	r.S.Receipts[gr.ID] = &c
	return nil
}

func (r *ReceiptRepo) GetByID(tenantID, id string) (*entity.GoodsReceipt, error) {
	if gr, ok := r.S.Receipts[id]; ok && gr.TenantID == tenantID {
		c := *gr
		c.Lines = append([]entity.GoodsReceiptLine(nil), gr.Lines...)
		return &c, nil
	}
	return nil, nil
}

func (r *ReceiptRepo) ListByOrder(orderID string) ([]*entity.GoodsReceipt, error) {
	var list []*entity.GoodsReceipt
	for _, gr := range r.S.Receipts {
		if gr.OrderID == orderID {
			c := *gr
			c.Lines = append([]entity.GoodsReceiptLine(nil), gr.Lines...)
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// ── Transfer ──────────────────────────────────────────────────────────────

type TransferRepo struct{ S *Store }

var _ repository.TransferRepository = (*TransferRepo)(nil)

func (r *TransferRepo) Create(t *entity.Transfer) error {
	c := *t
	c.Lines = append([]entity.TransferLine(nil), t.Lines...)
	r.S.Transfers[t.ID] = &c
	return nil
}

func (r *TransferRepo) GetByID(tenantID, id string) (*entity.Transfer, error) {
	if t, ok := r.S.Transfers[id]; ok && t.TenantID == tenantID {
		c := *t
		c.Lines = append([]entity.TransferLine(nil), t.Lines...)
		return &c, nil
	}
	return nil, nil
}

func (r *TransferRepo) GetByIDForUpdate(tenantID, id string) (*entity.Transfer, error) {
	return r.GetByID(tenantID, id)
}

func (r *TransferRepo) Update(t *entity.Transfer) error {
	existing, ok := r.S.Transfers[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *t
	c.Lines = append([]entity.TransferLine(nil), existing.Lines...)
	r.S.Transfers[t.ID] = &c
	return nil
}

func (r *TransferRepo) ListByTenant(tenantID string, status entity.TransferStatus, limit, offset int) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	for _, t := range r.S.Transfers {
		if t.TenantID != tenantID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		c := *t
		c.Lines = append([]entity.TransferLine(nil), t.Lines...)
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// ── CreditNote ────────────────────────────────────────────────────────────

type NoteRepo struct{ S *Store }

var _ repository.CreditNoteRepository = (*NoteRepo)(nil)

func (r *NoteRepo) Create(n *entity.CreditNote) error {
	c := *n
	c.Lines = append([]entity.CreditNoteLine(nil), n.Lines...)
	r.S.Notes[n.ID] = &c
	return nil
}

func (r *NoteRepo) GetByID(tenantID, id string) (*entity.CreditNote, error) {
	if n, ok := r.S.Notes[id]; ok && n.TenantID == tenantID {
		c := *n
		c.Lines = append([]entity.CreditNoteLine(nil), n.Lines...)
		return &c, nil
	}
	return nil, nil
}

func (r *NoteRepo) ListBySale(saleID string) ([]*entity.CreditNote, error) {
	var list []*entity.CreditNote
	for _, n := range r.S.Notes {
		if n.SaleID == saleID {
			c := *n
			c.Lines = append([]entity.CreditNoteLine(nil), n.Lines...)
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *NoteRepo) CreditedBySale(saleID string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, n := range r.S.Notes {
		if n.SaleID != saleID {
			continue
		}
		for _, l := range n.Lines {
			out[l.SaleLineID] = out[l.SaleLineID].Add(l.Quantity)
		}
	}
	return out, nil
}

func (r *NoteRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.CreditNote, error) {
	var list []*entity.CreditNote
	for _, n := range r.S.Notes {
		if n.TenantID == tenantID {
			c := *n
			c.Lines = append([]entity.CreditNoteLine(nil), n.Lines...)
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// ── CashSession ───────────────────────────────────────────────────────────

type SessionRepo struct{ S *Store }

var _ repository.CashSessionRepository = (*SessionRepo)(nil)

func (r *SessionRepo) Create(s *entity.CashSession) error {
	for _, x := range r.S.Sessions {
		if x.TenantID == s.TenantID && x.RegisterID == s.RegisterID && x.Status == entity.SessionAbierta {
			return domain.ErrSessionAlreadyOpen
		}
	}
	c := *s
	r.S.Sessions[s.ID] = &c
	return nil
}

func (r *SessionRepo) GetByID(tenantID, id string) (*entity.CashSession, error) {
	if s, ok := r.S.Sessions[id]; ok && s.TenantID == tenantID {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (r *SessionRepo) GetByIDForUpdate(tenantID, id string) (*entity.CashSession, error) {
	return r.GetByID(tenantID, id)
}

func (r *SessionRepo) GetOpenByRegister(tenantID, registerID string) (*entity.CashSession, error) {
	for _, s := range r.S.Sessions {
		if s.TenantID == tenantID && s.RegisterID == registerID && s.Status == entity.SessionAbierta {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *SessionRepo) Update(s *entity.CashSession) error {
	if _, ok := r.S.Sessions[s.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *s
	r.S.Sessions[s.ID] = &c
	return nil
}

func (r *SessionRepo) AddMovement(m *entity.CashMovement) error {
	c := *m
	r.S.CashMovs = append(r.S.CashMovs, &c)
	return nil
}

func (r *SessionRepo) ListMovements(sessionID string) ([]*entity.CashMovement, error) {
	var list []*entity.CashMovement
	for _, m := range r.S.CashMovs {
		if m.SessionID == sessionID {
			c := *m
			list = append(list, &c)
		}
	}
	return list, nil
}

func (r *SessionRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.CashSession, error) {
	var list []*entity.CashSession
	for _, s := range r.S.Sessions {
		if s.TenantID == tenantID {
			c := *s
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OpenedAt.After(list[j].OpenedAt) })
	return paginate(list, limit, offset), nil
}

// ── StorefrontOrder ───────────────────────────────────────────────────────

type StorefrontOrderRepo struct{ S *Store }

var _ repository.StorefrontOrderRepository = (*StorefrontOrderRepo)(nil)

func (r *StorefrontOrderRepo) Create(o *entity.StorefrontOrder) error {
	c := *o
	c.Lines = append([]entity.StorefrontOrderLine(nil), o.Lines...)
	r.S.StorefrontOrders[o.ID] = &c
	return nil
}

func (r *StorefrontOrderRepo) GetByIDAndCustomer(tenantID, id, customerID string) (*entity.StorefrontOrder, error) {
	if o, ok := r.S.StorefrontOrders[id]; ok && o.TenantID == tenantID && o.CustomerID == customerID {
		c := *o
		c.Lines = append([]entity.StorefrontOrderLine(nil), o.Lines...)
		return &c, nil
	}
	return nil, nil
}

func (r *StorefrontOrderRepo) Update(o *entity.StorefrontOrder) error {
	if _, ok := r.S.StorefrontOrders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *o
	c.Lines = append([]entity.StorefrontOrderLine(nil), o.Lines...)
	r.S.StorefrontOrders[o.ID] = &c
	return nil
}

func (r *StorefrontOrderRepo) ListByCustomer(tenantID, customerID string, limit, offset int) ([]*entity.StorefrontOrder, error) {
	var list []*entity.StorefrontOrder
	for _, o := range r.S.StorefrontOrders {
		if o.TenantID == tenantID && o.CustomerID == customerID {
			c := *o
			c.Lines = append([]entity.StorefrontOrderLine(nil), o.Lines...)
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// ── Reports ───────────────────────────────────────────────────────────────

type ReportsRepo struct{ S *Store }

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

func (r *ReportsRepo) SalesCountByStatus(tenantID string) (map[entity.SaleStatus]int, error) {
	out := make(map[entity.SaleStatus]int)
	for _, s := range r.S.Sales {
		if s.TenantID == tenantID {
			out[s.Status]++
		}
	}
	return out, nil
}

func (r *ReportsRepo) OrdersCountByStatus(tenantID string) (map[entity.PurchaseOrderStatus]int, error) {
	out := make(map[entity.PurchaseOrderStatus]int)
	for _, o := range r.S.Orders {
		if o.TenantID == tenantID {
			out[o.Status]++
		}
	}
	return out, nil
}

func (r *ReportsRepo) TransfersCountByStatus(tenantID string) (map[entity.TransferStatus]int, error) {
	out := make(map[entity.TransferStatus]int)
	for _, t := range r.S.Transfers {
		if t.TenantID == tenantID {
			out[t.Status]++
		}
	}
	return out, nil
}

func (r *ReportsRepo) SalesTotalForDay(tenantID string, day time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	y, m, d := day.Date()
	for _, s := range r.S.Sales {
		if s.TenantID != tenantID || s.Status != entity.SalePagada {
			continue
		}
		sy, sm, sd := s.CreatedAt.Date()
		if sy == y && sm == m && sd == d {
			total = total.Add(s.Total)
		}
	}
	return total, nil
}

// ── helpers ───────────────────────────────────────────────────────────────

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
