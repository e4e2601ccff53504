package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-admin-service/internal/client"
	"shop-admin-service/internal/currency"
)

const productJSON = `{"id":1,"name":"Thermal paste","enter_price":"100","out_price":"150","count":5,"currency":"usd"}`

// storeStub serves one product and records order submissions.
func storeStub(t *testing.T, submitStatus int) (*client.StoreClient, *int) {
	t.Helper()
	submitted := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/orders":
			submitted++
			w.WriteHeader(submitStatus)
		case r.URL.Path == "/products/1":
			fmt.Fprint(w, productJSON)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return client.NewStoreClient(srv.URL), &submitted
}

func newOrderService(t *testing.T, submitStatus int) (*OrderService, *int) {
	t.Helper()
	store, submitted := storeStub(t, submitStatus)
	catalog := NewCatalogService(store, nil)
	rates := currency.NewRateProvider("http://unused", nil)
	return NewOrderService(store, catalog, rates, nil), submitted
}

func TestOrderDraftLifecycle(t *testing.T) {
	s, submitted := newOrderService(t, http.StatusCreated)
	ctx := context.Background()

	assert.Empty(t, s.Lines())

	res, err := s.ComposeLine(ctx, 1, "3", 150, "usd")
	require.NoError(t, err)
	require.NoError(t, s.AddLine(res))

	res, err = s.ComposeLine(ctx, 1, "2", 120, "usd")
	require.NoError(t, err)
	require.NoError(t, s.AddLine(res))

	require.Len(t, s.Lines(), 2)
	totals := s.Totals()
	assert.Equal(t, 2, totals.LineCount)
	assert.InDelta(t, 690.0, totals.TotalPrice, 1e-9)
	assert.InDelta(t, 190.0, totals.TotalIncome, 1e-9)

	s.SetCustomer("Anora", "998901234567")
	require.NoError(t, s.Submit(ctx, 7))

	assert.Equal(t, 1, *submitted)
	assert.Empty(t, s.Lines(), "draft is cleared after a successful submit")
}

func TestAddLineRefusesBlocked(t *testing.T) {
	s, _ := newOrderService(t, http.StatusCreated)

	res, err := s.ComposeLine(context.Background(), 1, "6", 150, "usd")
	require.NoError(t, err)
	require.True(t, res.Blocked())

	require.ErrorIs(t, s.AddLine(res), ErrLineBlocked)
	assert.Empty(t, s.Lines())
}

func TestAddLineAllowsAdvisoryWarnings(t *testing.T) {
	s, _ := newOrderService(t, http.StatusCreated)

	res, err := s.ComposeLine(context.Background(), 1, "2", 90, "usd")
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)

	require.NoError(t, s.AddLine(res))
	assert.Len(t, s.Lines(), 1)
}

func TestRemoveLine(t *testing.T) {
	s, _ := newOrderService(t, http.StatusCreated)
	ctx := context.Background()

	for _, price := range []float64{110, 120, 130} {
		res, err := s.ComposeLine(ctx, 1, "1", price, "usd")
		require.NoError(t, err)
		require.NoError(t, s.AddLine(res))
	}

	require.NoError(t, s.RemoveLine(1))

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 110.0, lines[0].Price)
	assert.Equal(t, 130.0, lines[1].Price)

	require.ErrorIs(t, s.RemoveLine(5), ErrNoSuchLine)
	require.ErrorIs(t, s.RemoveLine(-1), ErrNoSuchLine)
}

func TestSubmitEmptyDraft(t *testing.T) {
	s, submitted := newOrderService(t, http.StatusCreated)

	require.ErrorIs(t, s.Submit(context.Background(), 7), ErrEmptyOrder)
	assert.Equal(t, 0, *submitted)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	s, _ := newOrderService(t, http.StatusInternalServerError)
	ctx := context.Background()

	res, err := s.ComposeLine(ctx, 1, "1", 150, "usd")
	require.NoError(t, err)
	require.NoError(t, s.AddLine(res))

	require.Error(t, s.Submit(ctx, 7))
	assert.Len(t, s.Lines(), 1, "a failed submission leaves the draft intact")
}

func TestAbandonClearsDraft(t *testing.T) {
	s, _ := newOrderService(t, http.StatusCreated)
	ctx := context.Background()

	res, err := s.ComposeLine(ctx, 1, "1", 150, "usd")
	require.NoError(t, err)
	require.NoError(t, s.AddLine(res))

	s.Abandon()
	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.Totals().LineCount)
}
