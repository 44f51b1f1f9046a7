package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	Cost            decimal.Decimal  `json:"cost"`
	ControlStock    *bool            `json:"control_stock"` // nil = true
	LiquidationPct  *decimal.Decimal `json:"liquidation_pct"`
	LiquidationFrom *time.Time       `json:"liquidation_from"`
	LiquidationTo   *time.Time       `json:"liquidation_to"`
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Cost            *decimal.Decimal `json:"cost"`
	ControlStock    *bool            `json:"control_stock"`
	LiquidationPct  *decimal.Decimal `json:"liquidation_pct"`
	LiquidationFrom *time.Time       `json:"liquidation_from"`
	LiquidationTo   *time.Time       `json:"liquidation_to"`
}

// ProductResponse proyección de producto.
type ProductResponse struct {
	ID              string           `json:"id"`
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	Cost            decimal.Decimal  `json:"cost"`
	ControlStock    bool             `json:"control_stock"`
	LiquidationPct  *decimal.Decimal `json:"liquidation_pct,omitempty"`
	LiquidationFrom *time.Time       `json:"liquidation_from,omitempty"`
	LiquidationTo   *time.Time       `json:"liquidation_to,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CreateWarehouseRequest alta de almacén.
type CreateWarehouseRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

// WarehouseResponse proyección de almacén.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Capacity  int       `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
