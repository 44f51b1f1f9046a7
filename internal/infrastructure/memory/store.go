// Package memory provee repositorios en memoria y un TxRunner con rollback por
// snapshot. Solo para pruebas: no es apto para uso concurrente.
package memory

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/domain/entity"
)

// Store contiene todo el estado en memoria. Los repos comparten el puntero.
type Store struct {
	Tenants          map[string]*entity.Tenant
	Users            map[string]*entity.User
	Customers        map[string]*entity.Customer
	Suppliers        map[string]*entity.Supplier
	Products         map[string]*entity.Product
	Warehouses       map[string]*entity.Warehouse
	Stocks           map[string]*entity.Stock // llave tenant|producto|almacén
	Movements        []*entity.LedgerMovement
	Sales            map[string]*entity.Sale
	Orders           map[string]*entity.PurchaseOrder
	Receipts         map[string]*entity.GoodsReceipt
	Transfers        map[string]*entity.Transfer
	Notes            map[string]*entity.CreditNote
	Sessions         map[string]*entity.CashSession
	CashMovs         []*entity.CashMovement
	StorefrontOrders map[string]*entity.StorefrontOrder
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Tenants:          make(map[string]*entity.Tenant),
		Users:            make(map[string]*entity.User),
		Customers:        make(map[string]*entity.Customer),
		Suppliers:        make(map[string]*entity.Supplier),
		Products:         make(map[string]*entity.Product),
		Warehouses:       make(map[string]*entity.Warehouse),
		Stocks:           make(map[string]*entity.Stock),
		Sales:            make(map[string]*entity.Sale),
		Orders:           make(map[string]*entity.PurchaseOrder),
		Receipts:         make(map[string]*entity.GoodsReceipt),
		Transfers:        make(map[string]*entity.Transfer),
		Notes:            make(map[string]*entity.CreditNote),
		Sessions:         make(map[string]*entity.CashSession),
		StorefrontOrders: make(map[string]*entity.StorefrontOrder),
	}
}

func stockKey(tenantID, productID, warehouseID string) string {
	return tenantID + "|" + productID + "|" + warehouseID
}

// clone copia profunda del estado, para el rollback del TxRunner.
func (s *Store) clone() *Store {
	c := NewStore()
	for k, v := range s.Tenants {
		t := *v
		c.Tenants[k] = &t
	}
	for k, v := range s.Users {
		u := *v
		c.Users[k] = &u
	}
	for k, v := range s.Customers {
		cu := *v
		c.Customers[k] = &cu
	}
	for k, v := range s.Suppliers {
		sp := *v
		c.Suppliers[k] = &sp
	}
	for k, v := range s.Products {
		p := *v
		c.Products[k] = &p
	}
	for k, v := range s.Warehouses {
		w := *v
		c.Warehouses[k] = &w
	}
	for k, v := range s.Stocks {
		st := *v
		c.Stocks[k] = &st
	}
	c.Movements = make([]*entity.LedgerMovement, len(s.Movements))
	for i, v := range s.Movements {
		m := *v
		c.Movements[i] = &m
	}
	for k, v := range s.Sales {
		sa := *v
		sa.Lines = slices.Clone(v.Lines)
		sa.Payments = slices.Clone(v.Payments)
		c.Sales[k] = &sa
	}
	for k, v := range s.Orders {
		o := *v
		o.Lines = slices.Clone(v.Lines)
		c.Orders[k] = &o
	}
	for k, v := range s.Receipts {
		gr := *v
		gr.Lines = slices.Clone(v.Lines)
		c.Receipts[k] = &gr
	}
	for k, v := range s.Transfers {
		tr := *v
		tr.Lines = slices.Clone(v.Lines)
		c.Transfers[k] = &tr
	}
	for k, v := range s.Notes {
		n := *v
		n.Lines = slices.Clone(v.Lines)
		c.Notes[k] = &n
	}
	for k, v := range s.Sessions {
		se := *v
		c.Sessions[k] = &se
	}
	c.CashMovs = make([]*entity.CashMovement, len(s.CashMovs))
	for i, v := range s.CashMovs {
		m := *v
		c.CashMovs[i] = &m
	}
	for k, v := range s.StorefrontOrders {
		p := *v
		p.Lines = slices.Clone(v.Lines)
		c.StorefrontOrders[k] = &p
	}
	return c
}

// restore reemplaza el estado por el snapshot.
func (s *Store) restore(snap *Store) {
	*s = *snap
}

// SeedStock fija el stock de una llave directamente (solo para armar escenarios).
func (s *Store) SeedStock(tenantID, productID, warehouseID string, qty decimal.Decimal) {
	s.Stocks[stockKey(tenantID, productID, warehouseID)] = &entity.Stock{
		TenantID:    tenantID,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
		UpdatedAt:   time.Now(),
	}
}

// StockQty devuelve la cantidad en mano de una llave (cero si no existe).
func (s *Store) StockQty(tenantID, productID, warehouseID string) decimal.Decimal {
	if st, ok := s.Stocks[stockKey(tenantID, productID, warehouseID)]; ok {
		return st.Quantity
	}
	return decimal.Zero
}
