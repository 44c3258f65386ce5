package spoonacular

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeProvider = (*Cached)(nil)

// Cached wraps a provider with a TTL response cache. Backspacing over a
// query or repeating a search costs no API quota while entries are fresh.
// Only successful responses are stored. Cached slices are shared between
// callers and must not be mutated.
type Cached struct {
	next  domain.RecipeProvider
	store *cache.Cache
	log   *logger.Logger
}

// NewCached wraps next. Entries expire after ttl and are purged every 2*ttl.
func NewCached(next domain.RecipeProvider, ttl time.Duration, log *logger.Logger) *Cached {
	return &Cached{
		next:  next,
		store: cache.New(ttl, 2*ttl),
		log:   log,
	}
}

// Autocomplete serves from cache when possible.
func (c *Cached) Autocomplete(ctx context.Context, query string, number int) ([]domain.IngredientSuggestion, error) {
	key := "ac:" + strconv.Itoa(number) + ":" + query
	if x, found := c.store.Get(key); found {
		c.log.Debug("cache hit %s", key)
		return x.([]domain.IngredientSuggestion), nil
	}
	out, err := c.next.Autocomplete(ctx, query, number)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, out, cache.DefaultExpiration)
	return out, nil
}

// FindByIngredients serves from cache when possible.
func (c *Cached) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]domain.RecipeMatch, error) {
	key := "find:" + strconv.Itoa(number) + ":" + strings.Join(ingredients, ",")
	if x, found := c.store.Get(key); found {
		c.log.Debug("cache hit %s", key)
		return x.([]domain.RecipeMatch), nil
	}
	out, err := c.next.FindByIngredients(ctx, ingredients, number)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, out, cache.DefaultExpiration)
	return out, nil
}

// InformationBulk serves from cache when possible.
func (c *Cached) InformationBulk(ctx context.Context, ids []int) ([]domain.Recipe, error) {
	key := "bulk:" + JoinIDs(ids)
	if x, found := c.store.Get(key); found {
		c.log.Debug("cache hit %s", key)
		return x.([]domain.Recipe), nil
	}
	out, err := c.next.InformationBulk(ctx, ids)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, out, cache.DefaultExpiration)
	return out, nil
}

// Flush drops every cached response.
func (c *Cached) Flush() {
	c.store.Flush()
}

// Len returns the number of cached responses, including expired ones not
// yet purged.
func (c *Cached) Len() int {
	return c.store.ItemCount()
}
