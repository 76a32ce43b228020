package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	yfgo "github.com/komsit37/yf-go"
	"golang.org/x/time/rate"
)

// ErrNoPrice is returned when the provider answers without a market price.
var ErrNoPrice = errors.New("no market price")

// Fetcher looks up the current market price of a ticker.
type Fetcher interface {
	Price(ctx context.Context, symbol string) (float64, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, symbol string) (float64, error)

func (f FetcherFunc) Price(ctx context.Context, symbol string) (float64, error) {
	return f(ctx, symbol)
}

// YFFetcher implements Fetcher using yf-go.
type YFFetcher struct {
	client  *yfgo.Client
	timeout time.Duration
}

func NewYFFetcher(timeout time.Duration) *YFFetcher {
	return &YFFetcher{client: yfgo.NewClient(), timeout: timeout}
}

func (f *YFFetcher) Price(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return 0, fmt.Errorf("empty symbol: %w", ErrNoPrice)
	}

	cctx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	res, err := f.client.QuoteSummaryTyped(cctx, symbol, []yfgo.QuoteSummaryModule{yfgo.ModulePrice})
	if err != nil {
		return 0, fmt.Errorf("quote %s: %w", symbol, err)
	}
	if res.Price == nil || res.Price.RegularMarketPrice.Raw == nil {
		return 0, fmt.Errorf("quote %s: %w", symbol, ErrNoPrice)
	}
	return *res.Price.RegularMarketPrice.Raw, nil
}

// Limited throttles lookups on the wrapped Fetcher.
type Limited struct {
	next    Fetcher
	limiter *rate.Limiter
}

// NewLimited allows rps lookups per second with bursts of one.
// A non-positive rps returns next unchanged.
func NewLimited(next Fetcher, rps float64) Fetcher {
	if rps <= 0 {
		return next
	}
	return &Limited{next: next, limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

func (l *Limited) Price(ctx context.Context, symbol string) (float64, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("quote %s: %w", symbol, err)
	}
	return l.next.Price(ctx, symbol)
}
