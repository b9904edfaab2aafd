// Package userdetail merges the user record with the user's task list for
// the user detail screen.
package userdetail

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

const screenName = "user-detail"

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

// View is the merged projection for one user.
type View struct {
	User  models.User
	Tasks []models.Task
}

// Aggregator drives the user detail screen: user record and task list
// fetched concurrently, all-or-nothing.
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
		log:           log.WithFields(map[string]interface{}{"component": "user-detail"}),
		state:         StateIdle,
	}
}

func (a *Aggregator) Load(ctx context.Context, userID int64) (*View, error) {
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

	type tasksResult struct {
		tasks []models.Task
		err   error
	}
	tasksCh := make(chan tasksResult, 1)
	go func() {
		tasks, err := a.backendClient.ListUserTasks(loadCtx, userID)
		tasksCh <- tasksResult{tasks: tasks, err: err}
	}()

	view := &View{}
	user, err := a.backendClient.GetUser(loadCtx, userID)
	if err == nil {
		view.User = *user
	}

	res := <-tasksCh
	if err == nil {
		err = res.err
		view.Tasks = res.tasks
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
		a.log.Error("user detail load failed", map[string]interface{}{"userId": userID, "error": err.Error()})
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
