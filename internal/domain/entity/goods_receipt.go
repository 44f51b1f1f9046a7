package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceipt documenta la recepción física (posiblemente parcial) de una
// orden de compra. Cada unidad aceptada genera exactamente un movimiento
// COMPRA_ENTRADA; las rechazadas se registran con motivo y no tocan el ledger.
type GoodsReceipt struct {
	ID          string
	TenantID    string
	OrderID     string
	WarehouseID string
	Complete    bool // true si esta recepción dejó la orden COMPLETADA
	Notes       string
	ReceivedBy  string
	CreatedAt   time.Time

	Lines []GoodsReceiptLine
}

// GoodsReceiptLine detalla cantidades aceptadas/rechazadas de un renglón de la orden.
type GoodsReceiptLine struct {
	ID               string
	ReceiptID        string
	OrderLineID      string
	ProductID        string
	QuantityAccepted decimal.Decimal
	QuantityRejected decimal.Decimal
	RejectReason     string
}
