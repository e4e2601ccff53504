package entity

// OrderLineItem is one priced product entry inside an order. Price is stored in
// the product's base currency; Amount and Income are derived when the line is
// composed and never recomputed afterwards.
type OrderLineItem struct {
	ProductID int      `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Amount    float64  `json:"amount"`
	Income    float64  `json:"income"`
}

// Order is an order record as served by the store API. Lines keep insertion
// order. Soft-deleted orders stay in the collection but are excluded from
// analytics.
type Order struct {
	ID           int             `json:"id"`
	ShopID       int             `json:"shop"`
	CustomerName string          `json:"name"`
	PhoneNumber  string          `json:"phone_number"`
	Lines        []OrderLineItem `json:"products"`
	TotalPrice   float64         `json:"total_price"`
	TotalIncome  float64         `json:"total_income"`
	IsDeleted    bool            `json:"is_deleted"`
}
