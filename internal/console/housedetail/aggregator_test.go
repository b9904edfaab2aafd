package housedetail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"admin-console/internal/backend"
	"admin-console/internal/common/config"
	conerr "admin-console/internal/common/errors"
	"admin-console/internal/common/logger"
	"admin-console/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type houseBackend struct {
	srv          *httptest.Server
	failHouse    bool
	failServices bool
	failUsers    bool
}

func newHouseBackend(t *testing.T) *houseBackend {
	t.Helper()
	hb := &houseBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /houses/{id}", func(w http.ResponseWriter, r *http.Request) {
		if hb.failHouse {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(models.House{ID: 9, Name: "Maple House", Address: "12 Maple St", Balance: 120.5, Ledger: 40, HSI: 87})
	})
	mux.HandleFunc("GET /houses/{id}/services", func(w http.ResponseWriter, r *http.Request) {
		if hb.failServices {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]models.Service{{
			ID:          1,
			Partner:     &models.Partner{ID: 5, Name: "SolarCo"},
			ServicePlan: &models.ServicePlan{ID: 2, Name: "Premium"},
		}})
	})
	mux.HandleFunc("GET /houses/{id}/users", func(w http.ResponseWriter, r *http.Request) {
		if hb.failUsers {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]models.User{
			{ID: 3, Username: "ana", Status: "active"},
			{ID: 4, Username: "leo", Status: "active"},
		})
	})

	hb.srv = httptest.NewServer(mux)
	t.Cleanup(hb.srv.Close)
	return hb
}

func newTestAggregator(t *testing.T, hb *houseBackend) *Aggregator {
	t.Helper()
	log := logger.NewTestLogger(t)
	client := backend.NewClient(config.BackendConfig{BaseURL: hb.srv.URL, Timeout: 5000}, log)
	return NewAggregator(client, nil, log)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestAggregator_Load(t *testing.T) {
	hb := newHouseBackend(t)
	agg := newTestAggregator(t, hb)
	assert.Equal(t, StateIdle, agg.State())

	view, err := agg.Load(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, StateReady, agg.State())

	assert.Equal(t, "Maple House", view.House.Name)
	assert.Equal(t, 87, view.House.HSI)
	require.Len(t, view.Services, 1)
	assert.Equal(t, "SolarCo", view.Services[0].Partner.Name)
	assert.Equal(t, "Premium", view.Services[0].ServicePlan.Name)
	assert.Len(t, view.Users, 2)
}

func TestAggregator_AnyFailureFailsWholeLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(hb *houseBackend)
	}{
		{name: "house fetch fails", setup: func(hb *houseBackend) { hb.failHouse = true }},
		{name: "services fetch fails", setup: func(hb *houseBackend) { hb.failServices = true }},
		{name: "users fetch fails", setup: func(hb *houseBackend) { hb.failUsers = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hb := newHouseBackend(t)
			tt.setup(hb)
			agg := newTestAggregator(t, hb)

			view, err := agg.Load(context.Background(), 9)
			require.Error(t, err)
			assert.Nil(t, view)
			assert.Equal(t, StateFailed, agg.State())
			assert.Nil(t, agg.View())
			assert.Equal(t, conerr.ErrCodeAggregateLoadFailed, conerr.CodeOf(agg.Err()))
			assert.Equal(t, "Error fetching details.", conerr.UserMessage(agg.Err()))
		})
	}
}

func TestAggregator_ReloadRecoversFromFailure(t *testing.T) {
	hb := newHouseBackend(t)
	hb.failUsers = true
	agg := newTestAggregator(t, hb)

	_, err := agg.Load(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, StateFailed, agg.State())

	hb.failUsers = false
	view, err := agg.Load(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, StateReady, agg.State())
	assert.Len(t, view.Users, 2)
	assert.NoError(t, agg.Err())
}

func TestAggregator_Teardown(t *testing.T) {
	hb := newHouseBackend(t)
	agg := newTestAggregator(t, hb)
	_, err := agg.Load(context.Background(), 9)
	require.NoError(t, err)

	agg.Teardown()
	assert.Equal(t, StateIdle, agg.State())
	assert.Nil(t, agg.View())
	assert.NoError(t, agg.Err())
}
