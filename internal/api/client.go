// Package api is the fixed catalog of named operations against the function
// gateway. Required operations propagate errors; auxiliary operations go
// through the optional wrapper and report absent data as zero values.
package api

import (
	"fmt"
	"net/url"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/wytfitness/Fitness-App-04112025/internal/gateway"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

// foodCacheSize bounds the per-session food search cache.
const foodCacheSize = 60

// userAPI is the main multiplexed function; food search and barcode lookup
// live in their own functions.
const (
	userAPIFn   = "user-api"
	foodSearch  = "food-search"
	nutritionFn = "nutrition-lookup"
)

// Client is the domain API surface. All methods are safe for use from a
// single goroutine; the food cache is internally synchronized.
type Client struct {
	gw        *gateway.Client
	logger    *zap.Logger
	foodCache *lru.Cache[string, []model.Product]
}

// New builds the surface over an executor.
func New(gw *gateway.Client, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := lru.New[string, []model.Product](foodCacheSize)
	if err != nil {
		return nil, err
	}
	return &Client{gw: gw, logger: logger, foodCache: cache}, nil
}

// action builds a user-api path with query parameters.
func action(name string, params url.Values) string {
	q := url.Values{"action": {name}}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return userAPIFn + "?" + q.Encode()
}

// ValidationError is a locally rejected request; nothing was sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
