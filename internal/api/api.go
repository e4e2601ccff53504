package api

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"shop-admin-service/internal/currency"
	"shop-admin-service/internal/pricing"
	"shop-admin-service/internal/service"
)

type Handler struct {
	orders    *service.OrderService
	catalog   *service.CatalogService
	analytics *service.AnalyticsService
	rates     *currency.RateProvider
}

func NewHandler(orders *service.OrderService, catalog *service.CatalogService, analytics *service.AnalyticsService, rates *currency.RateProvider) *Handler {
	return &Handler{orders: orders, catalog: catalog, analytics: analytics, rates: rates}
}

type switchCurrencyRequest struct {
	Currency string `json:"currency"`
}

// SwitchCurrency starts a rate lookup for the selected secondary currency.
// The response carries the rate resolved so far; until the lookup lands the
// figures computed with it are provisional.
func (h *Handler) SwitchCurrency(c echo.Context) error {
	req := switchCurrencyRequest{}
	if err := c.Bind(&req); err != nil || req.Currency == "" {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	h.rates.Switch(c.Request().Context(), req.Currency)

	return c.JSON(200, map[string]interface{}{
		"currency": h.rates.Currency(),
		"rate":     h.rates.Rate(),
	})
}

type composeLineRequest struct {
	ProductID int     `json:"product_id"`
	Quantity  string  `json:"quantity"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
}

type composeLineResponse struct {
	*pricing.ComposeResult
	Blocked bool `json:"blocked"`
}

// ComposeLine prices a line without touching the draft, so the UI can show
// live feedback while the user is still typing.
func (h *Handler) ComposeLine(c echo.Context) error {
	req := composeLineRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	res, err := h.orders.ComposeLine(c.Request().Context(), req.ProductID, req.Quantity, req.Price, req.Currency)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidQuantity) || errors.Is(err, pricing.ErrNoProduct) {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, composeLineResponse{ComposeResult: res, Blocked: res.Blocked()})
}

// AddLine composes a line and appends it to the draft.
func (h *Handler) AddLine(c echo.Context) error {
	req := composeLineRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	res, err := h.orders.ComposeLine(c.Request().Context(), req.ProductID, req.Quantity, req.Price, req.Currency)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidQuantity) || errors.Is(err, pricing.ErrNoProduct) {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	if err := h.orders.AddLine(res); err != nil {
		return c.JSON(409, composeLineResponse{ComposeResult: res, Blocked: true})
	}

	return c.JSON(200, composeLineResponse{ComposeResult: res, Blocked: false})
}

// RemoveLine drops the draft line at the given position.
func (h *Handler) RemoveLine(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid index"})
	}

	if err := h.orders.RemoveLine(index); err != nil {
		return c.JSON(404, map[string]string{"error": err.Error()})
	}
	return h.GetDraft(c)
}

// GetDraft returns the draft lines and their running totals.
func (h *Handler) GetDraft(c echo.Context) error {
	return c.JSON(200, map[string]interface{}{
		"lines":  h.orders.Lines(),
		"totals": h.orders.Totals(),
	})
}

// AbandonDraft discards the draft.
func (h *Handler) AbandonDraft(c echo.Context) error {
	h.orders.Abandon()
	return c.NoContent(204)
}

type submitOrderRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Shop        int    `json:"shop"`
}

// SubmitOrder posts the draft to the store API. The draft survives a failed
// submission.
func (h *Handler) SubmitOrder(c echo.Context) error {
	req := submitOrderRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	h.orders.SetCustomer(req.Name, req.PhoneNumber)

	if err := h.orders.Submit(c.Request().Context(), req.Shop); err != nil {
		if errors.Is(err, service.ErrEmptyOrder) {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(502, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"status": "submitted"})
}

// GetProducts lists the products in scope.
func (h *Handler) GetProducts(c echo.Context) error {
	shopID, err := shopIDParam(c)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid shop_id"})
	}

	products, err := h.catalog.GetProducts(c.Request().Context(), shopID)
	if err != nil {
		return c.JSON(502, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, products)
}

// GetSummary returns the analytics summary, platform-wide or for one shop.
func (h *Handler) GetSummary(c echo.Context) error {
	shopID, err := shopIDParam(c)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid shop_id"})
	}

	var summary interface{}
	if shopID > 0 {
		summary, err = h.analytics.ShopSummary(c.Request().Context(), shopID)
	} else {
		summary, err = h.analytics.PlatformSummary(c.Request().Context())
	}
	if err != nil {
		return c.JSON(502, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, summary)
}

func shopIDParam(c echo.Context) (int, error) {
	raw := c.QueryParam("shop_id")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
