package main

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"shop-admin-service/internal/api"
	"shop-admin-service/internal/client"
	"shop-admin-service/internal/config"
	"shop-admin-service/internal/currency"
	"shop-admin-service/internal/service"
)

func main() {
	cfg := config.Load()

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	kafkaWriter := config.NewKafkaWriter("order-topic")

	store := client.NewStoreClient(cfg.StoreAPIURL)
	rates := currency.NewRateProvider(cfg.RateAPIURL, rdb)
	rates.Switch(context.Background(), "UZS")

	catalog := service.NewCatalogService(store, rdb)
	orders := service.NewOrderService(store, catalog, rates, kafkaWriter)
	analytics := service.NewAnalyticsService(store)
	handler := api.NewHandler(orders, catalog, analytics, rates)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	g := e.Group("")
	if cfg.JWTSecret != "" {
		g.Use(echojwt.JWT([]byte(cfg.JWTSecret)))
	}

	g.GET("/products", handler.GetProducts)
	g.GET("/analytics/summary", handler.GetSummary)
	g.PUT("/currency", handler.SwitchCurrency)
	g.POST("/lines/compose", handler.ComposeLine)
	g.GET("/orders/draft", handler.GetDraft)
	g.POST("/orders/draft/lines", handler.AddLine)
	g.DELETE("/orders/draft/lines/:index", handler.RemoveLine)
	g.DELETE("/orders/draft", handler.AbandonDraft)
	g.POST("/orders", handler.SubmitOrder)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "shop-admin-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
