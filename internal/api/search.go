package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wytfitness/Fitness-App-04112025/internal/gateway"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

// searchTimeout is tighter than the general default because search results
// feed a keystroke-driven list; a slow result is a stale result.
const searchTimeout = 8 * time.Second

// minQueryLen: shorter queries never hit the network.
const minQueryLen = 2

// SearchFoods queries the food catalog. Queries under two characters resolve
// locally to an empty list. Repeated queries within a session are served from
// a bounded LRU keyed by the normalized query and limit; aborted calls are
// never cached. The caller-supplied ctx is the supersession mechanism: cancel
// it when a newer keystroke arrives.
func (c *Client) SearchFoods(ctx context.Context, q string, limit int) ([]model.Product, error) {
	q = strings.TrimSpace(q)
	if len(q) < minQueryLen {
		return []model.Product{}, nil
	}
	if limit <= 0 {
		limit = 25
	}

	key := fmt.Sprintf("%s|%d", strings.ToLower(q), limit)
	if cached, ok := c.foodCache.Get(key); ok {
		c.logger.Debug("food search cache hit", zap.String("query", q))
		return cached, nil
	}

	path := foodSearch + "?" + url.Values{
		"q":     {q},
		"limit": {strconv.Itoa(limit)},
	}.Encode()
	raw, err := c.gw.Call(ctx, path, gateway.WithTimeout(searchTimeout))
	if err != nil {
		return nil, err
	}
	products := gateway.DecodeList[model.Product](raw, "products", "items")
	c.foodCache.Add(key, products)
	return products, nil
}

// LookupEAN resolves a barcode into a product. Optional: a backend without
// the lookup function yields (nil, nil), as does an unknown barcode.
func (c *Client) LookupEAN(ctx context.Context, ean string) (*model.Product, error) {
	ean = strings.TrimSpace(ean)
	if ean == "" {
		return nil, &ValidationError{Field: "ean", Reason: "required"}
	}
	path := nutritionFn + "?" + url.Values{"ean": {ean}}.Encode()
	raw, err := c.gw.Optional(ctx, path, gateway.WithTimeout(searchTimeout))
	if err != nil || raw == nil {
		return nil, err
	}
	p, ok := gateway.DecodeObject[model.Product](raw, "product")
	if !ok || p.Name == "" {
		return nil, nil
	}
	return &p, nil
}
