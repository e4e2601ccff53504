package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// RateProvider resolves the exchange rate between the base currency and the
// currently selected secondary currency. One lookup is outstanding per
// currency switch; a newer switch supersedes any in-flight lookup and the
// stale result is discarded. While no rate is resolved the provider reports 1.
type RateProvider struct {
	rateAPIURL string
	rdb        *redis.Client

	mu       sync.Mutex
	gen      uint64
	currency string
	rate     float64
}

// NewRateProvider creates a RateProvider. rdb may be nil, in which case rates
// are fetched from the rate API on every switch.
func NewRateProvider(rateAPIURL string, rdb *redis.Client) *RateProvider {
	return &RateProvider{rateAPIURL: rateAPIURL, rdb: rdb}
}

// Rate returns the latest resolved rate, or 1 if none has resolved yet.
func (p *RateProvider) Rate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rate <= 0 {
		return 1
	}
	return p.rate
}

// Currency returns the currency of the latest switch.
func (p *RateProvider) Currency() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currency
}

// Switch starts a lookup for the given secondary currency and returns
// immediately. The result is applied only if no newer switch happened in the
// meantime. A failed lookup falls back to the identity rate.
func (p *RateProvider) Switch(ctx context.Context, currency string) {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.currency = currency
	p.mu.Unlock()

	// the lookup may outlive the request that triggered the switch
	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)

	go func() {
		defer cancel()
		rate, err := p.fetch(lookupCtx, currency)
		if err != nil {
			logger.Warn().Err(err).Msgf("Rate lookup for %s failed, falling back to 1", currency)
			rate = 1
		}
		p.apply(gen, rate)
	}()
}

// apply installs a fetched rate unless the lookup was superseded by a newer
// switch.
func (p *RateProvider) apply(gen uint64, rate float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return
	}
	if rate <= 0 {
		rate = 1
	}
	p.rate = rate
}

func (p *RateProvider) fetch(ctx context.Context, currency string) (float64, error) {
	key := fmt.Sprintf("exchange_rate:%s", currency)

	if p.rdb != nil {
		cached, err := p.rdb.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			logger.Error().Err(err).Msgf("Error getting rate for %s from cache", currency)
		}
		if cached != "" {
			rate, err := strconv.ParseFloat(cached, 64)
			if err == nil && rate > 0 {
				return rate, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/rates/%s", p.rateAPIURL, currency), nil)
	if err != nil {
		return 0, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate source returned status %d", resp.StatusCode)
	}

	var body struct {
		Rate float64 `json:"rate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	if body.Rate <= 0 {
		return 0, fmt.Errorf("rate source returned non-positive rate %f", body.Rate)
	}

	if p.rdb != nil {
		err = p.rdb.Set(ctx, key, strconv.FormatFloat(body.Rate, 'f', -1, 64), 1*time.Minute).Err()
		if err != nil {
			logger.Error().Err(err).Msgf("Error setting rate for %s in cache", currency)
		}
	}

	return body.Rate, nil
}
