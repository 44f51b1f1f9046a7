package dto

import "github.com/shopspring/decimal"

// DashboardResponse contadores agregados por estado (solo lectura).
type DashboardResponse struct {
	SalesByStatus     map[string]int  `json:"sales_by_status"`
	OrdersByStatus    map[string]int  `json:"orders_by_status"`
	TransfersByStatus map[string]int  `json:"transfers_by_status"`
	SalesTotalToday   decimal.Decimal `json:"sales_total_today"`
}
