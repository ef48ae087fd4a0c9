// internal/domain/recommendations/service.go
package recommendations

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/pkg/deferred"
	"github.com/your-org/storefront-gateway/internal/storefront"
)

// Fetcher retrieves recommended products from the storefront platform.
type Fetcher interface {
	GetRecommendedProducts(ctx context.Context, handle string) ([]storefront.RecommendedProduct, error)
}

// Result is what a recommendations lookup settles to. Unavailable marks a
// failed fetch; an empty Products slice with Unavailable false means the
// platform genuinely has nothing to recommend.
type Result struct {
	Products    []storefront.RecommendedProduct
	Unavailable bool
}

// Service serves recommended-products lists with a redis cache in front of
// the platform. Lookups never return an error: recommendations are deferred
// page data and a failure here must degrade, not propagate.
type Service struct {
	storefront  Fetcher
	redisClient *redis.Client
	config      *config.Config
	logger      *logrus.Logger
	group       singleflight.Group
}

// NewService creates a new recommendations service
func NewService(fetcher Fetcher, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		storefront:  fetcher,
		redisClient: redisClient,
		config:      cfg,
		logger:      logger,
	}
}

func cacheKey(handle string) string {
	return "recommended:" + handle
}

// Prefetch starts a background lookup for a handle and returns a future that
// resolves with the result. The lookup runs on its own deadline so it
// survives the originating request finishing first.
func (s *Service) Prefetch(handle string) *deferred.Value[Result] {
	d := deferred.New[Result]()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.config.Recommendations.FetchTimeout)
		defer cancel()
		d.Resolve(s.Get(ctx, handle))
	}()

	return d
}

// Get returns recommended products for a handle, cache-aside: redis first,
// then one platform fetch shared across concurrent misses via singleflight.
func (s *Service) Get(ctx context.Context, handle string) Result {
	if products, ok := s.cached(ctx, handle); ok {
		return Result{Products: products}
	}

	value, err, _ := s.group.Do(handle, func() (interface{}, error) {
		products, err := s.storefront.GetRecommendedProducts(ctx, handle)
		if err != nil {
			// Logged here, at the source, so concurrent callers joined on
			// the same flight produce a single entry.
			s.logger.WithError(err).WithField("handle", handle).Warn("Recommended products fetch failed")
			return nil, err
		}

		if max := s.config.Recommendations.Count; max > 0 && len(products) > max {
			products = products[:max]
		}

		s.store(ctx, handle, products)
		return products, nil
	})
	if err != nil {
		return Result{Unavailable: true}
	}

	products, _ := value.([]storefront.RecommendedProduct)
	return Result{Products: products}
}

func (s *Service) cached(ctx context.Context, handle string) ([]storefront.RecommendedProduct, bool) {
	data, err := s.redisClient.Get(ctx, cacheKey(handle)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		s.logger.WithError(err).WithField("handle", handle).Warn("Recommendations cache read failed")
		return nil, false
	}

	var products []storefront.RecommendedProduct
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *Service) store(ctx context.Context, handle string, products []storefront.RecommendedProduct) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}

	if err := s.redisClient.Set(ctx, cacheKey(handle), data, s.config.Recommendations.CacheTTL).Err(); err != nil {
		s.logger.WithError(err).WithField("handle", handle).Warn("Recommendations cache write failed")
	}
}
