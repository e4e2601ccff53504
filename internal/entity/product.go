package entity

import "strconv"

// Product is the read-only product projection served by the store API.
// Prices arrive as decimal strings and are always in the product's own currency.
type Product struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	EnterPrice string `json:"enter_price"`
	OutPrice   string `json:"out_price"`
	Count      int    `json:"count"`
	Currency   string `json:"currency"`
}

// EnterPriceValue parses the cost basis. An empty or malformed price reads as 0.
func (p *Product) EnterPriceValue() float64 {
	return parsePrice(p.EnterPrice)
}

// OutPriceValue parses the suggested sale price. An empty or malformed price reads as 0.
func (p *Product) OutPriceValue() float64 {
	return parsePrice(p.OutPrice)
}

func parsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

/*
Store API product payload:

{
  "id": 1,
  "name": "Thermal paste",
  "enter_price": "100.000000",
  "out_price": "150.000000",
  "count": 5,
  "currency": "usd"
}
*/
