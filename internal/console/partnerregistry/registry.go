// Package partnerregistry holds the cached partner collection behind the
// partner list screen.
package partnerregistry

import (
	"context"
	"sync"

	"admin-console/internal/backend"
	"admin-console/internal/common/logger"
	"admin-console/internal/common/metrics"
	"admin-console/internal/models"
)

const screenName = "partner-list"

// Registry provides list/create/update/delete over partner records. Every
// successful mutation refreshes the cached collection by re-listing rather
// than patching it, trading one extra round trip for consistency.
type Registry struct {
	mu       sync.Mutex
	backend  *backend.Client
	log      logger.Logger
	partners []models.Partner
	// refreshToken increases per issued refresh; completions carrying an
	// older token are discarded so a slow re-list cannot overwrite a newer one.
	refreshToken uint64
}

func NewRegistry(client *backend.Client, log logger.Logger) *Registry {
	return &Registry{
		backend: client,
		log:     log.WithFields(map[string]interface{}{"component": "partner-registry"}),
	}
}

// List fetches the partner collection and replaces the cache.
func (r *Registry) List(ctx context.Context) ([]models.Partner, error) {
	return r.refresh(ctx)
}

// Partners returns the cached collection as of the last refresh.
func (r *Registry) Partners() []models.Partner {
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshot(r.partners)
}

// Get fetches one partner record by id.
func (r *Registry) Get(ctx context.Context, id int64) (*models.Partner, error) {
	return r.backend.GetPartner(ctx, id)
}

// Create creates a partner and refreshes the cache. No client-side
// validation is applied; the backend enforces its own rules.
func (r *Registry) Create(ctx context.Context, input models.PartnerInput) (*models.Partner, error) {
	partner, err := r.backend.CreatePartner(ctx, input)
	if err != nil {
		r.log.Error("partner create failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	if _, err := r.refresh(ctx); err != nil {
		return partner, err
	}
	return partner, nil
}

// Update replaces a partner's editable fields and refreshes the cache.
func (r *Registry) Update(ctx context.Context, id int64, input models.PartnerInput) (*models.Partner, error) {
	partner, err := r.backend.UpdatePartner(ctx, id, input)
	if err != nil {
		r.log.Error("partner update failed", map[string]interface{}{"partnerId": id, "error": err.Error()})
		return nil, err
	}
	if _, err := r.refresh(ctx); err != nil {
		return partner, err
	}
	return partner, nil
}

// Delete removes a partner and refreshes the cache.
func (r *Registry) Delete(ctx context.Context, id int64) error {
	if err := r.backend.DeletePartner(ctx, id); err != nil {
		r.log.Error("partner delete failed", map[string]interface{}{"partnerId": id, "error": err.Error()})
		return err
	}
	_, err := r.refresh(ctx)
	return err
}

func (r *Registry) refresh(ctx context.Context) ([]models.Partner, error) {
	r.mu.Lock()
	r.refreshToken++
	token := r.refreshToken
	r.mu.Unlock()

	partners, err := r.backend.ListPartners(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if token != r.refreshToken {
		metrics.StaleCompletionsDiscarded.WithLabelValues(screenName).Inc()
		r.log.Debug("discarding stale partner list", map[string]interface{}{"token": token})
		return snapshot(r.partners), nil
	}
	r.partners = partners
	return snapshot(r.partners), nil
}

func snapshot(partners []models.Partner) []models.Partner {
	out := make([]models.Partner, len(partners))
	copy(out, partners)
	return out
}
