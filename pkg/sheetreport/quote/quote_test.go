package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYFFetcherEmptySymbol(t *testing.T) {
	f := NewYFFetcher(time.Second)
	_, err := f.Price(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPrice))
}

func TestNewLimitedUnlimited(t *testing.T) {
	next := FetcherFunc(func(context.Context, string) (float64, error) { return 1, nil })
	_, isLimited := NewLimited(next, 0).(*Limited)
	assert.False(t, isLimited)
	_, isLimited = NewLimited(next, 5).(*Limited)
	assert.True(t, isLimited)
}

func TestLimitedDelegates(t *testing.T) {
	var seen []string
	next := FetcherFunc(func(_ context.Context, sym string) (float64, error) {
		seen = append(seen, sym)
		if sym == "BAD" {
			return 0, ErrNoPrice
		}
		return 110, nil
	})
	f := NewLimited(next, 1000)

	p, err := f.Price(context.Background(), "ACM")
	require.NoError(t, err)
	assert.Equal(t, 110.0, p)

	_, err = f.Price(context.Background(), "BAD")
	assert.ErrorIs(t, err, ErrNoPrice)
	assert.Equal(t, []string{"ACM", "BAD"}, seen)
}

func TestLimitedCancelled(t *testing.T) {
	calls := 0
	next := FetcherFunc(func(context.Context, string) (float64, error) {
		calls++
		return 1, nil
	})
	f := NewLimited(next, 0.001)

	_, err := f.Price(context.Background(), "A")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Price(ctx, "B")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
