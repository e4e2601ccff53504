package pricing

import "shop-admin-service/internal/entity"

// OrderTotals are the order-level figures folded from a list of lines.
type OrderTotals struct {
	TotalPrice  float64 `json:"total_price"`
	TotalAmount float64 `json:"total_amount"`
	TotalIncome float64 `json:"total_income"`
	LineCount   int     `json:"line_count"`
}

// AggregateOrder folds line items into order totals. Aggregation keeps full
// numeric precision; rounding to display precision happens at presentation
// time only. An empty list yields all-zero totals.
func AggregateOrder(lines []entity.OrderLineItem) OrderTotals {
	totals := OrderTotals{LineCount: len(lines)}
	for _, line := range lines {
		totals.TotalPrice += line.Price * float64(line.Quantity)
		totals.TotalAmount += line.Amount
		totals.TotalIncome += line.Income
	}
	return totals
}

// Summarize folds a pre-scoped collection of orders and products into an
// AnalyticsSummary. Scoping (platform-wide or per shop) is the caller's
// responsibility. Soft-deleted orders are skipped.
func Summarize(orders []entity.Order, products []entity.Product) entity.AnalyticsSummary {
	summary := entity.AnalyticsSummary{ProductsCount: len(products)}
	for _, o := range orders {
		if o.IsDeleted {
			continue
		}
		summary.TotalIncome += o.TotalIncome
		summary.TotalAmount += o.TotalPrice
		summary.OrdersCount++
	}
	if summary.OrdersCount > 0 {
		summary.AverageCheck = summary.TotalAmount / float64(summary.OrdersCount)
	}
	return summary
}
