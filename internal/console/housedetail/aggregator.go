// Package housedetail merges the house record with its services and members
// for the house detail screen.
package housedetail

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
	"admin-console/internal/models"
)

const screenName = "house-detail"

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// ErrSuperseded is returned by Load when a newer load was started before
// this one settled.
var ErrSuperseded = errors.New("load superseded by a newer request")

// View is the merged projection for one house.
type View struct {
	House    models.House
	Services []models.Service
	Users    []models.User
}

// Aggregator drives the house detail screen. The three fetches are fully
// independent and run concurrently; the view is published only once all of
// them settle, and any failure fails the whole load.
type Aggregator struct {
	backendClient *backend.Client
	obs           *observability.Observability
	log           logger.Logger

	mu      sync.Mutex
	state   State
	view    *View
	lastErr error
	token   uint64
	cancel  context.CancelFunc
}

func NewAggregator(client *backend.Client, obs *observability.Observability, log logger.Logger) *Aggregator {
	return &Aggregator{
		backendClient: client,
		obs:           obs,
		log:           log.WithFields(map[string]interface{}{"component": "house-detail"}),
		state:         StateIdle,
	}
}

func (a *Aggregator) Load(ctx context.Context, houseID int64) (*View, error) {
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
	view := &View{}
	errs := make([]error, 3)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		house, err := a.backendClient.GetHouse(loadCtx, houseID)
		if err == nil {
			view.House = *house
		}
		errs[0] = err
	}()
	go func() {
		defer wg.Done()
		view.Services, errs[1] = a.backendClient.ListHouseServices(loadCtx, houseID)
	}()
	go func() {
		defer wg.Done()
		view.Users, errs[2] = a.backendClient.ListHouseUsers(loadCtx, houseID)
	}()
	wg.Wait()

	var err error
	for _, e := range errs {
		if e != nil {
			err = e
			break
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if token != a.token {
		metrics.StaleCompletionsDiscarded.WithLabelValues(screenName).Inc()
		return nil, ErrSuperseded
	}

	if err != nil {
		loadErr := conerr.NewAggregateLoadFailedError(screenName, err)
		a.state = StateFailed
		a.view = nil
		a.lastErr = loadErr
		metrics.ScreenLoads.WithLabelValues(screenName, "failed").Inc()
		a.recordLoad(loadCtx, "failed", start)
		a.log.Error("house detail load failed", map[string]interface{}{"houseId": houseID, "error": err.Error()})
		return nil, loadErr
	}

	a.state = StateReady
	a.view = view
	a.lastErr = nil
	metrics.ScreenLoads.WithLabelValues(screenName, "ready").Inc()
	a.recordLoad(loadCtx, "ready", start)
	return view, nil
}

func (a *Aggregator) recordLoad(ctx context.Context, outcome string, start time.Time) {
	if a.obs == nil {
		return
	}
	a.obs.RecordScreenLoad(ctx, screenName, outcome)
	a.obs.RecordLoadDuration(ctx, screenName, time.Since(start))
}

func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Aggregator) View() *View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *Aggregator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Teardown cancels any in-flight load and resets the screen.
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
}
