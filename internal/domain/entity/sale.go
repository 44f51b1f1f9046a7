package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
type SaleStatus string

const (
	SalePendientePago SaleStatus = "PENDIENTE_PAGO"
	SalePagada        SaleStatus = "PAGADA"
	SaleCancelada     SaleStatus = "CANCELADA"
)

// Métodos de pago aceptados en ventas y devoluciones.
type PaymentMethod string

const (
	PaymentEfectivo      PaymentMethod = "EFECTIVO"
	PaymentTarjeta       PaymentMethod = "TARJETA"
	PaymentTransferencia PaymentMethod = "TRANSFERENCIA"
	PaymentYape          PaymentMethod = "YAPE"
	PaymentPlin          PaymentMethod = "PLIN"
)

// Valid indica si el método pertenece a la enumeración.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentEfectivo, PaymentTarjeta, PaymentTransferencia, PaymentYape, PaymentPlin:
		return true
	}
	return false
}

// Sale representa una venta POS. Nace PENDIENTE_PAGO con precios congelados
// del catálogo; el stock se descuenta recién al capturar el pago.
type Sale struct {
	ID             string
	TenantID       string
	Code           string
	SessionID      *string // sesión de caja, opcional
	CustomerID     *string
	WarehouseID    string
	Status         SaleStatus
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	AmountReceived decimal.Decimal
	Change         decimal.Decimal
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Lines    []SaleLine
	Payments []SalePayment
}

// SaleLine es un renglón de la venta con el precio unitario congelado al crearla.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // descuento absoluto del renglón
	Subtotal  decimal.Decimal // qty*precio − descuento, redondeado
}

// SalePayment es un pago parcial de la venta (pagos divididos).
type SalePayment struct {
	ID        string
	SaleID    string
	Method    PaymentMethod
	Amount    decimal.Decimal
	Reference string
}
