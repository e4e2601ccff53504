package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shop-admin-service/internal/entity"
)

// StoreClient talks to the external store API that owns products, shops and
// orders. This service never persists anything itself.
type StoreClient struct {
	baseURL string
	http    *http.Client
}

func NewStoreClient(baseURL string) *StoreClient {
	return &StoreClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SubmitOrderRequest is the order submission payload the store API accepts.
type SubmitOrderRequest struct {
	Name        string            `json:"name"`
	PhoneNumber string            `json:"phone_number"`
	Products    []SubmitOrderLine `json:"products"`
	Shop        int               `json:"shop"`
}

type SubmitOrderLine struct {
	Product  int     `json:"product"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ListProducts fetches the products in scope. shopID 0 means platform-wide.
func (c *StoreClient) ListProducts(ctx context.Context, shopID int) ([]entity.Product, error) {
	url := fmt.Sprintf("%s/products", c.baseURL)
	if shopID > 0 {
		url = fmt.Sprintf("%s/products?shop=%d", c.baseURL, shopID)
	}

	var products []entity.Product
	if err := c.getJSON(ctx, url, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *StoreClient) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	var product entity.Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListOrders fetches the orders in scope. shopID 0 means platform-wide.
func (c *StoreClient) ListOrders(ctx context.Context, shopID int) ([]entity.Order, error) {
	url := fmt.Sprintf("%s/orders", c.baseURL)
	if shopID > 0 {
		url = fmt.Sprintf("%s/orders?shop=%d", c.baseURL, shopID)
	}

	var orders []entity.Order
	if err := c.getJSON(ctx, url, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SubmitOrder posts a composed order. Only the success status matters; the
// response body is not interpreted.
func (c *StoreClient) SubmitOrder(ctx context.Context, order *SubmitOrderRequest) error {
	body, err := json.Marshal(order)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/orders", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("store API returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *StoreClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store API returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
