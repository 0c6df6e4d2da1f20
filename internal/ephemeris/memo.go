package ephemeris

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

// defaultMemoSize bounds the memoizer when no size is given: enough for a
// multi-year daily scan of every chart body.
const defaultMemoSize = 8192

type memoKey struct {
	body astro.Body
	day  julian.Day
	mode astro.ZodiacMode
}

// Memo caches positions from an inner provider in a bounded LRU keyed on
// (body, instant, mode). Providers are pure functions of that triple, so
// cached entries never go stale. Errors are not cached.
type Memo struct {
	inner Provider
	cache *lru.Cache[memoKey, Position]
}

// NewMemo wraps a provider with a bounded LRU cache. Size values below one
// select the default capacity.
func NewMemo(inner Provider, size int) (*Memo, error) {
	if size < 1 {
		size = defaultMemoSize
	}
	cache, err := lru.New[memoKey, Position](size)
	if err != nil {
		return nil, err
	}
	return &Memo{inner: inner, cache: cache}, nil
}

// Position returns a cached position when available and defers to the inner
// provider otherwise.
func (m *Memo) Position(ctx context.Context, body astro.Body, day julian.Day, mode astro.ZodiacMode) (Position, error) {
	key := memoKey{body: body, day: day, mode: mode}
	if cached, ok := m.cache.Get(key); ok {
		return cached, nil
	}
	position, err := m.inner.Position(ctx, body, day, mode)
	if err != nil {
		return Position{}, err
	}
	m.cache.Add(key, position)
	return position, nil
}
