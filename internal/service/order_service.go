package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"shop-admin-service/internal/client"
	"shop-admin-service/internal/currency"
	"shop-admin-service/internal/entity"
	"shop-admin-service/internal/pricing"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var (
	ErrLineBlocked = errors.New("line has a blocking constraint violation")
	ErrEmptyOrder  = errors.New("order has no lines")
	ErrNoSuchLine  = errors.New("no line at that position")
)

// OrderService owns the in-progress order draft of one editing session and
// submits it to the store API. The draft lifecycle is empty -> accumulating
// lines -> cleared on submit or abandon.
type OrderService struct {
	store       *client.StoreClient
	catalog     *CatalogService
	rates       *currency.RateProvider
	kafkaWriter *kafka.Writer

	lines        []entity.OrderLineItem
	customerName string
	phoneNumber  string
}

// NewOrderService creates a new instance of OrderService. kafkaWriter may be
// nil, in which case no order events are published.
func NewOrderService(store *client.StoreClient, catalog *CatalogService, rates *currency.RateProvider, kafkaWriter *kafka.Writer) *OrderService {
	return &OrderService{
		store:       store,
		catalog:     catalog,
		rates:       rates,
		kafkaWriter: kafkaWriter,
	}
}

// ComposeLine fetches the selected product and prices a draft line against it
// using the latest resolved exchange rate. The result carries any constraint
// violations; only an unparseable quantity is an error.
func (s *OrderService) ComposeLine(ctx context.Context, productID int, quantity string, price float64, workingCurrency string) (*pricing.ComposeResult, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting product %d", productID)
		return nil, err
	}
	return pricing.ComposeLine(product, quantity, price, workingCurrency, s.rates.Rate())
}

// AddLine appends a composed line to the draft. Lines with a blocking
// violation are refused; advisory warnings do not prevent adding.
func (s *OrderService) AddLine(res *pricing.ComposeResult) error {
	if res.Blocked() {
		return ErrLineBlocked
	}
	s.lines = append(s.lines, res.Line)
	return nil
}

// RemoveLine removes the line at the given position, keeping the order of the
// remaining lines.
func (s *OrderService) RemoveLine(index int) error {
	if index < 0 || index >= len(s.lines) {
		return ErrNoSuchLine
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	return nil
}

// Lines returns the draft lines in insertion order.
func (s *OrderService) Lines() []entity.OrderLineItem {
	return s.lines
}

// Totals folds the current draft into order totals.
func (s *OrderService) Totals() pricing.OrderTotals {
	return pricing.AggregateOrder(s.lines)
}

// SetCustomer records the optional customer name and phone on the draft.
func (s *OrderService) SetCustomer(name, phone string) {
	s.customerName = name
	s.phoneNumber = phone
}

// Submit posts the draft to the store API and publishes an order event. The
// draft is cleared only on success; a failed submission leaves it intact so
// the user can retry.
func (s *OrderService) Submit(ctx context.Context, shopID int) error {
	if len(s.lines) == 0 {
		return ErrEmptyOrder
	}

	req := &client.SubmitOrderRequest{
		Name:        s.customerName,
		PhoneNumber: s.phoneNumber,
		Shop:        shopID,
	}
	for _, line := range s.lines {
		req.Products = append(req.Products, client.SubmitOrderLine{
			Product:  line.ProductID,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	if err := s.store.SubmitOrder(ctx, req); err != nil {
		logger.Error().Err(err).Msg("Error submitting order")
		return err
	}

	if err := s.publishOrderEvent(ctx, req, "submitted"); err != nil {
		// the order is already accepted by the store API at this point
		logger.Error().Err(err).Msg("Error publishing order event")
	}

	s.Abandon()
	return nil
}

// Abandon discards the draft.
func (s *OrderService) Abandon() {
	s.lines = nil
	s.customerName = ""
	s.phoneNumber = ""
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *client.SubmitOrderRequest, key string) error {
	if s.kafkaWriter == nil {
		return nil
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", key, order.Shop)),
		Value: orderJSON,
	}
	return s.kafkaWriter.WriteMessages(ctx, msg)
}
