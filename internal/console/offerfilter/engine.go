// Package offerfilter loads the immutable offer snapshot catalog and filters
// it by postal code on the client side.
package offerfilter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"admin-console/internal/backend"
	"admin-console/internal/common/cache"
	conerr "admin-console/internal/common/errors"
	"admin-console/internal/common/logger"
	"admin-console/internal/common/metrics"
	"admin-console/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/xeipuuv/gojsonschema"
)

const catalogCacheKey = "offer-snapshots:catalog"

// Engine holds the authoritative unfiltered catalog for one detail-view
// activation. Filtering is always applied to this catalog, never to a
// previous filter result.
type Engine struct {
	backend *backend.Client
	cache   *cache.RedisClient // nil disables caching
	ttl     time.Duration
	log     logger.Logger

	mu      sync.Mutex
	catalog []models.OfferSnapshot
	loaded  bool
}

func NewEngine(client *backend.Client, redisCache *cache.RedisClient, ttl time.Duration, log logger.Logger) *Engine {
	return &Engine{
		backend: client,
		cache:   redisCache,
		ttl:     ttl,
		log:     log.WithFields(map[string]interface{}{"component": "offer-filter"}),
	}
}

// LoadCatalog fetches the full catalog, preferring the redis cache when one
// is configured. Documents are schema-validated before entering the catalog;
// the catalog is rejected whole if any document is invalid.
func (e *Engine) LoadCatalog(ctx context.Context) ([]models.OfferSnapshot, error) {
	if offers, ok := e.fromCache(ctx); ok {
		e.store(offers)
		return snapshot(offers), nil
	}

	offers, err := e.backend.ListOfferSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateCatalog(offers); err != nil {
		e.log.Error("offer catalog rejected", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	e.toCache(ctx, offers)
	e.store(offers)
	return snapshot(offers), nil
}

// Catalog returns the loaded catalog. Loaded reports whether LoadCatalog has
// succeeded for this activation.
func (e *Engine) Catalog() []models.OfferSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.catalog)
}

func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Filter returns the offers covering the given postal code, preserving
// catalog order. An empty zip returns the full catalog unchanged. Pure with
// respect to the catalog; results must not be re-filtered.
func (e *Engine) Filter(zip string) []models.OfferSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if strings.TrimSpace(zip) == "" {
		return snapshot(e.catalog)
	}

	var out []models.OfferSnapshot
	for _, offer := range e.catalog {
		if offer.HasZipCode(zip) {
			out = append(out, offer)
		}
	}
	return out
}

func (e *Engine) store(offers []models.OfferSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.catalog = snapshot(offers)
	e.loaded = true
}

func (e *Engine) fromCache(ctx context.Context) ([]models.OfferSnapshot, bool) {
	if e.cache == nil || e.ttl <= 0 {
		return nil, false
	}

	raw, err := e.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CatalogCacheHits.WithLabelValues("miss").Inc()
		} else {
			metrics.CatalogCacheHits.WithLabelValues("error").Inc()
			e.log.Warn("catalog cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	var offers []models.OfferSnapshot
	if err := json.Unmarshal([]byte(raw), &offers); err != nil {
		// Corrupted entry: drop it and fall through to the backend.
		metrics.CatalogCacheHits.WithLabelValues("error").Inc()
		e.log.Warn("corrupted catalog cache entry", map[string]interface{}{"error": err.Error()})
		_ = e.cache.Del(ctx, catalogCacheKey)
		return nil, false
	}

	metrics.CatalogCacheHits.WithLabelValues("hit").Inc()
	return offers, true
}

func (e *Engine) toCache(ctx context.Context, offers []models.OfferSnapshot) {
	if e.cache == nil || e.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(offers)
	if err == nil {
		err = e.cache.Set(ctx, catalogCacheKey, string(raw), e.ttl)
	}
	if err != nil {
		// Cache population is best effort; the fetched catalog stands.
		e.log.Warn("catalog cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func validateCatalog(offers []models.OfferSnapshot) error {
	schemaLoader := gojsonschema.NewGoLoader(offerSnapshotSchema)
	for i, offer := range offers {
		result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(offer))
		if err != nil {
			return conerr.NewCatalogInvalidError(fmt.Sprintf("offer %d: %s", i, err))
		}
		if !result.Valid() {
			descs := make([]string, len(result.Errors()))
			for j, desc := range result.Errors() {
				descs[j] = desc.String()
			}
			return conerr.NewCatalogInvalidError(fmt.Sprintf("offer %d (%s): %v", i, offer.UUID, descs))
		}
		if _, err := uuid.Parse(offer.UUID); err != nil {
			return conerr.NewCatalogInvalidError(fmt.Sprintf("offer %d: bad uuid %q", i, offer.UUID))
		}
	}
	return nil
}

func snapshot(offers []models.OfferSnapshot) []models.OfferSnapshot {
	out := make([]models.OfferSnapshot, len(offers))
	copy(out, offers)
	return out
}
