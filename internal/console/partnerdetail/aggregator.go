// Package partnerdetail merges the independently fetched resources of one
// partner (record, forms, offer catalog) into a single consistent view.
package partnerdetail

import (
	"context"
	"errors"
	"sync"
	"time"

	"admin-console/internal/backend"
	conerr "admin-console/internal/common/errors"
	"admin-console/internal/common/logger"
	"admin-console/internal/common/metrics"
	"admin-console/internal/common/observability"
	"admin-console/internal/console/formengine"
	"admin-console/internal/console/mediamanager"
	"admin-console/internal/console/offerfilter"
	"admin-console/internal/models"
)

const screenName = "partner-detail"

// State is the screen lifecycle: Idle until the first load, Loading while
// fetches are in flight, then Ready or Failed. A failed load is terminal for
// the screen until the operator re-triggers it; there is no automatic retry.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// ErrSuperseded is returned by Load when a newer load for this screen was
// started before this one settled; its result has been discarded.
var ErrSuperseded = errors.New("load superseded by a newer request")

// View is the merged, UI-ready projection for one partner.
type View struct {
	Partner models.Partner
	Forms   []models.Form
	Offers  []models.OfferSnapshot
}

// Aggregator drives the partner detail screen. The offer engine is optional;
// without one the view carries no offers.
type Aggregator struct {
	backendClient *backend.Client
	offers        *offerfilter.Engine
	obs           *observability.Observability
	log           logger.Logger

	mu      sync.Mutex
	state   State
	view    *View
	lastErr error
	// token identifies the newest load; completions carrying an older token
	// are discarded so a stale response cannot overwrite the current view.
	token  uint64
	cancel context.CancelFunc

	forms *formengine.Engine
	media *mediamanager.Manager
}

func NewAggregator(client *backend.Client, offers *offerfilter.Engine, obs *observability.Observability, log logger.Logger) *Aggregator {
	return &Aggregator{
		backendClient: client,
		offers:        offers,
		obs:           obs,
		log:           log.WithFields(map[string]interface{}{"component": "partner-detail"}),
		state:         StateIdle,
	}
}

// Load fetches the partner record, the forms (only once the record shows a
// formable partner), and the offer catalog. Record and catalog fetches run
// concurrently; the forms fetch is gated on the record because it needs the
// partner type. Any failing sub-fetch fails the whole load with one generic
// message; no partial view is surfaced.
func (a *Aggregator) Load(ctx context.Context, partnerID int64) (*View, error) {
	a.mu.Lock()
	a.token++
	token := a.token
	if a.cancel != nil {
		a.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.state = StateLoading
	a.mu.Unlock()

	start := time.Now()
	a.log.Info("loading partner detail", map[string]interface{}{"partnerId": partnerID})

	type offersResult struct {
		offers []models.OfferSnapshot
		err    error
	}
	var offersCh chan offersResult
	if a.offers != nil {
		offersCh = make(chan offersResult, 1)
		go func() {
			offers, err := a.offers.LoadCatalog(loadCtx)
			offersCh <- offersResult{offers: offers, err: err}
		}()
	}

	view := &View{}
	partner, err := a.backendClient.GetPartner(loadCtx, partnerID)
	if err == nil {
		view.Partner = *partner
		if partner.IsFormable() {
			view.Forms, err = a.backendClient.ListForms(loadCtx, partnerID)
		}
	}

	if offersCh != nil {
		res := <-offersCh
		if err == nil {
			err = res.err
			view.Offers = res.offers
		}
	}

	return a.publish(loadCtx, token, view, err, start)
}

func (a *Aggregator) publish(ctx context.Context, token uint64, view *View, err error, start time.Time) (*View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if token != a.token {
		metrics.StaleCompletionsDiscarded.WithLabelValues(screenName).Inc()
		a.log.Debug("discarding stale load completion", map[string]interface{}{"token": token})
		return nil, ErrSuperseded
	}

	if err != nil {
		loadErr := conerr.NewAggregateLoadFailedError(screenName, err)
		a.state = StateFailed
		a.view = nil
		a.lastErr = loadErr
		a.forms = nil
		a.media = nil
		metrics.ScreenLoads.WithLabelValues(screenName, "failed").Inc()
		a.recordLoad(ctx, "failed", start)
		if conerr.IsNotFound(err) {
			// A missing partner is an operator navigation mistake, not a fault.
			a.log.Warn("partner not found", map[string]interface{}{"error": err.Error()})
		} else {
			a.log.Error("partner detail load failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, loadErr
	}

	a.state = StateReady
	a.view = view
	a.lastErr = nil
	if view.Partner.IsFormable() {
		a.forms = formengine.NewEngine(a.backendClient, a.log, view.Partner.ID, view.Forms)
	} else {
		a.forms = nil
	}
	a.media = mediamanager.NewManager(a.backendClient, a.log, view.Partner.ID)
	a.media.Seed(view.Partner)

	metrics.ScreenLoads.WithLabelValues(screenName, "ready").Inc()
	a.recordLoad(ctx, "ready", start)
	return view, nil
}

func (a *Aggregator) recordLoad(ctx context.Context, outcome string, start time.Time) {
	if a.obs == nil {
		return
	}
	a.obs.RecordScreenLoad(ctx, screenName, outcome)
	a.obs.RecordLoadDuration(ctx, screenName, time.Since(start))
}

// State returns the current screen state.
func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// View returns the published aggregate, or nil outside Ready.
func (a *Aggregator) View() *View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// Err returns the terminal load error, or nil outside Failed.
func (a *Aggregator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// FormEngine returns the engine for the loaded partner's forms, or nil for
// simple partners and outside Ready. Form operations on simple partners are
// unreachable by construction.
func (a *Aggregator) FormEngine() *formengine.Engine {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.forms
}

// Media returns the media manager for the loaded partner, or nil outside
// Ready.
func (a *Aggregator) Media() *mediamanager.Manager {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.media
}

// UpdateDetails patches the descriptive fields of the loaded partner and
// mirrors them into the current view.
func (a *Aggregator) UpdateDetails(ctx context.Context, patch models.PartnerPatch) error {
	a.mu.Lock()
	if a.state != StateReady || a.view == nil {
		a.mu.Unlock()
		return conerr.NewValidationError("state", "no partner loaded")
	}
	partnerID := a.view.Partner.ID
	a.mu.Unlock()

	if err := a.backendClient.PatchPartner(ctx, partnerID, patch); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.view != nil && a.view.Partner.ID == partnerID {
		a.view.Partner.About = patch.About
		a.view.Partner.ImportantInformation = patch.ImportantInformation
	}
	return nil
}

// Teardown cancels any in-flight load and resets the screen. Completions of
// cancelled loads are discarded by the token check.
func (a *Aggregator) Teardown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.state = StateIdle
	a.view = nil
	a.lastErr = nil
	a.forms = nil
	a.media = nil
}
