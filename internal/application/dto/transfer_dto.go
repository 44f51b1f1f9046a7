package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferLineRequest renglón del traslado.
type TransferLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateTransferRequest solicita un traslado entre almacenes distintos.
type CreateTransferRequest struct {
	OriginID      string                `json:"origin_id"`
	DestinationID string                `json:"destination_id"`
	Notes         string                `json:"notes"`
	Lines         []TransferLineRequest `json:"lines"`
}

// TransferResponse proyección del traslado.
type TransferResponse struct {
	ID            string                `json:"id"`
	OriginID      string                `json:"origin_id"`
	DestinationID string                `json:"destination_id"`
	Status        string                `json:"status"`
	RequestedBy   string                `json:"requested_by"`
	ApprovedBy    *string               `json:"approved_by,omitempty"`
	Lines         []TransferLineRequest `json:"lines"`
	CreatedAt     time.Time             `json:"created_at"`
}
