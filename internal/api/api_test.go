package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-admin-service/internal/client"
	"shop-admin-service/internal/currency"
	"shop-admin-service/internal/service"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/orders":
			w.WriteHeader(http.StatusCreated)
		case r.URL.Path == "/products/1":
			fmt.Fprint(w, `{"id":1,"name":"Thermal paste","enter_price":"100","out_price":"150","count":5,"currency":"usd"}`)
		case r.URL.Path == "/products":
			fmt.Fprint(w, `[{"id":1}]`)
		case r.URL.Path == "/orders":
			fmt.Fprint(w, `[{"id":1,"total_price":1000,"total_income":200}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	store := client.NewStoreClient(srv.URL)
	rates := currency.NewRateProvider(srv.URL, nil)
	catalog := service.NewCatalogService(store, nil)
	orders := service.NewOrderService(store, catalog, rates, nil)
	analytics := service.NewAnalyticsService(store)
	return NewHandler(orders, catalog, analytics, rates)
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestComposeLineHandler(t *testing.T) {
	h := newHandler(t)

	rec, out := doJSON(t, h.ComposeLine, http.MethodPost, "/lines/compose",
		`{"product_id":1,"quantity":"3","price":150,"currency":"usd"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, out["blocked"])
	line, ok := out["line"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 450.0, line["amount"])
	assert.Equal(t, 150.0, line["income"])
}

func TestComposeLineHandlerInvalidQuantity(t *testing.T) {
	h := newHandler(t)

	rec, out := doJSON(t, h.ComposeLine, http.MethodPost, "/lines/compose",
		`{"product_id":1,"quantity":"0","price":150,"currency":"usd"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, out["error"])
}

func TestComposeLineHandlerBlocked(t *testing.T) {
	h := newHandler(t)

	// a blocking violation is a value in the body, not an HTTP error
	rec, out := doJSON(t, h.ComposeLine, http.MethodPost, "/lines/compose",
		`{"product_id":1,"quantity":"6","price":150,"currency":"usd"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["blocked"])
}

func TestAddLineHandlerBlocked(t *testing.T) {
	h := newHandler(t)

	rec, _ := doJSON(t, h.AddLine, http.MethodPost, "/orders/draft/lines",
		`{"product_id":1,"quantity":"6","price":150,"currency":"usd"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec, out := doJSON(t, h.GetDraft, http.MethodGet, "/orders/draft", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, out["lines"])
}

func TestSubmitOrderHandlerEmptyDraft(t *testing.T) {
	h := newHandler(t)

	rec, _ := doJSON(t, h.SubmitOrder, http.MethodPost, "/orders",
		`{"name":"Anora","phone_number":"998901234567","shop":7}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitOrderHandler(t *testing.T) {
	h := newHandler(t)

	rec, _ := doJSON(t, h.AddLine, http.MethodPost, "/orders/draft/lines",
		`{"product_id":1,"quantity":"3","price":150,"currency":"usd"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, out := doJSON(t, h.SubmitOrder, http.MethodPost, "/orders",
		`{"name":"Anora","phone_number":"998901234567","shop":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "submitted", out["status"])
}

func TestGetSummaryHandler(t *testing.T) {
	h := newHandler(t)

	rec, out := doJSON(t, h.GetSummary, http.MethodGet, "/analytics/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1000.0, out["total_amount"])
	assert.Equal(t, 1.0, out["orders_count"])
}
