package service

import (
	"context"

	"shop-admin-service/internal/client"
	"shop-admin-service/internal/entity"
	"shop-admin-service/internal/pricing"
)

// AnalyticsService derives summary statistics over orders and products. The
// store API returns the collections already scoped, so the fold itself is
// scope-agnostic.
type AnalyticsService struct {
	store *client.StoreClient
}

func NewAnalyticsService(store *client.StoreClient) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// PlatformSummary aggregates over all orders and products.
func (a *AnalyticsService) PlatformSummary(ctx context.Context) (*entity.AnalyticsSummary, error) {
	return a.summary(ctx, 0)
}

// ShopSummary aggregates over the orders and products of one shop.
func (a *AnalyticsService) ShopSummary(ctx context.Context, shopID int) (*entity.AnalyticsSummary, error) {
	return a.summary(ctx, shopID)
}

func (a *AnalyticsService) summary(ctx context.Context, shopID int) (*entity.AnalyticsSummary, error) {
	orders, err := a.store.ListOrders(ctx, shopID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing orders for shop %d", shopID)
		return nil, err
	}

	products, err := a.store.ListProducts(ctx, shopID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing products for shop %d", shopID)
		return nil, err
	}

	summary := pricing.Summarize(orders, products)
	return &summary, nil
}
