package pricing

import (
	"errors"
	"strconv"
	"strings"

	"shop-admin-service/internal/currency"
	"shop-admin-service/internal/entity"
)

var (
	ErrNoProduct       = errors.New("no product selected")
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")
)

// Warning is a constraint violation raised while composing a line. Blocking
// warnings disable submission; advisory ones are surfaced inline but never
// prevent progress.
type Warning string

const (
	WarnInsufficientStock   Warning = "INSUFFICIENT_STOCK"
	WarnBelowOrAtEnterPrice Warning = "BELOW_OR_AT_ENTRY_PRICE"
)

func (w Warning) Blocking() bool {
	return w == WarnInsufficientStock
}

// ComposeResult is the outcome of composing one order line. Warnings are part
// of the value so the caller can render inline feedback.
type ComposeResult struct {
	Line     entity.OrderLineItem `json:"line"`
	Warnings []Warning            `json:"warnings"`
}

// Blocked reports whether any warning prevents the line from being added or
// submitted.
func (r *ComposeResult) Blocked() bool {
	for _, w := range r.Warnings {
		if w.Blocking() {
			return true
		}
	}
	return false
}

// ComposeLine validates and prices one order line. The price arrives in the
// working currency and is resolved to the product's base currency before it
// is stored; lines are always aggregated in the base currency. Selling at or
// below the entry price is advisory, asking for more than the available stock
// is blocking, and quantity exactly equal to the stock is allowed. Income may
// be negative.
func ComposeLine(product *entity.Product, quantity string, price float64, workingCurrency string, rate float64) (*ComposeResult, error) {
	if product == nil {
		return nil, ErrNoProduct
	}

	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil || qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	if !strings.EqualFold(workingCurrency, product.Currency) {
		price = currency.Convert(price, rate, currency.ToBase)
	}

	res := &ComposeResult{}

	if qty > product.Count {
		res.Warnings = append(res.Warnings, WarnInsufficientStock)
	}

	enter := product.EnterPriceValue()
	if price <= enter {
		res.Warnings = append(res.Warnings, WarnBelowOrAtEnterPrice)
	}

	res.Line = entity.OrderLineItem{
		ProductID: product.ID,
		Product:   product,
		Quantity:  qty,
		Price:     price,
		Amount:    price * float64(qty),
		Income:    float64(qty) * (price - enter),
	}

	return res, nil
}
