package entity

// AnalyticsSummary holds the aggregate figures for one query scope
// (platform-wide or a single shop). It is recomputed per query and has no
// lifecycle of its own.
type AnalyticsSummary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalAmount   float64 `json:"total_amount"`
	OrdersCount   int     `json:"orders_count"`
	ProductsCount int     `json:"products_count"`
	AverageCheck  float64 `json:"average_check"`
}
