package formengine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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

type fakeBackend struct {
	srv      *httptest.Server
	requests int64

	nextFormID  int64
	nextParamID int64
	failAll     bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{nextFormID: 10, nextParamID: 100}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /partners/{id}/forms", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fb.requests, 1)
		if fb.failAll {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		form := models.Form{ID: atomic.AddInt64(&fb.nextFormID, 1), Name: payload["name"]}
		json.NewEncoder(w).Encode(map[string]models.Form{"form": form})
	})
	mux.HandleFunc("POST /partners/{id}/forms/parameters", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fb.requests, 1)
		if fb.failAll {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var payload models.Parameter
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		payload.ID = atomic.AddInt64(&fb.nextParamID, 1)
		json.NewEncoder(w).Encode(map[string]models.Parameter{"parameter": payload})
	})
	mux.HandleFunc("DELETE /partners/{id}/forms/parameters/{paramId}", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fb.requests, 1)
		if fb.failAll {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	fb.srv = httptest.NewServer(mux)
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) requestCount() int64 {
	return atomic.LoadInt64(&fb.requests)
}

func newTestEngine(t *testing.T, fb *fakeBackend, forms []models.Form) *Engine {
	t.Helper()
	client := backend.NewClient(config.BackendConfig{BaseURL: fb.srv.URL, Timeout: 5000}, logger.NewTestLogger(t))
	return NewEngine(client, logger.NewTestLogger(t), 3, forms)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestEngine_CreateSelectAddParameter(t *testing.T) {
	fb := newFakeBackend(t)
	engine := newTestEngine(t, fb, nil)
	ctx := context.Background()

	form, err := engine.CreateForm(ctx, "Installation Intake")
	require.NoError(t, err)
	assert.Equal(t, "Installation Intake", form.Name)
	assert.Nil(t, engine.SelectedForm(), "creation must not auto-select")

	engine.SelectForm(*form)
	require.NotNil(t, engine.SelectedForm())
	assert.Empty(t, engine.Parameters())

	param, err := engine.AddParameter(ctx, models.ParameterSpec{
		Name: "Panel Count", Type: models.ParameterTypeNumber, PriceEffect: "150",
	})
	require.NoError(t, err)
	assert.Equal(t, form.ID, param.FormID)

	params := engine.Parameters()
	require.Len(t, params, 1)
	assert.Equal(t, "Panel Count", params[0].Name)
}

func TestEngine_SelectForm_SeedsSnapshot(t *testing.T) {
	fb := newFakeBackend(t)
	seeded := models.Form{ID: 5, Name: "Existing", Parameters: []models.Parameter{
		{ID: 1, FormID: 5, Name: "Color", Type: models.ParameterTypeSelect, Choices: "red,blue"},
	}}
	engine := newTestEngine(t, fb, []models.Form{seeded})

	engine.SelectForm(seeded)
	require.Len(t, engine.Parameters(), 1)

	engine.DeselectForm()
	assert.Nil(t, engine.SelectedForm())
	assert.Empty(t, engine.Parameters())
	assert.Zero(t, fb.requestCount(), "select and deselect are purely local")
}

// Adding a parameter updates the working list but never the cached form
// collection; re-selecting from that cache reseeds the stale snapshot.
func TestEngine_ParameterListDesyncsFromFormCache(t *testing.T) {
	fb := newFakeBackend(t)
	seeded := models.Form{ID: 5, Name: "Existing"}
	engine := newTestEngine(t, fb, []models.Form{seeded})
	ctx := context.Background()

	engine.SelectForm(seeded)
	_, err := engine.AddParameter(ctx, models.ParameterSpec{Name: "Panel Count", Type: models.ParameterTypeNumber})
	require.NoError(t, err)
	require.Len(t, engine.Parameters(), 1)

	cached := engine.Forms()
	require.Len(t, cached, 1)
	assert.Empty(t, cached[0].Parameters, "form cache is not reconciled")

	engine.SelectForm(cached[0])
	assert.Empty(t, engine.Parameters(), "re-selection reseeds from the stale snapshot")
}

func TestEngine_DeleteParameter(t *testing.T) {
	fb := newFakeBackend(t)
	seeded := models.Form{ID: 5, Name: "Existing", Parameters: []models.Parameter{
		{ID: 1, FormID: 5, Name: "Color"},
		{ID: 2, FormID: 5, Name: "Size"},
	}}
	engine := newTestEngine(t, fb, []models.Form{seeded})
	engine.SelectForm(seeded)

	require.NoError(t, engine.DeleteParameter(context.Background(), 1))

	params := engine.Parameters()
	require.Len(t, params, 1)
	assert.Equal(t, int64(2), params[0].ID)
}

func TestEngine_DeleteParameter_BackendFailureKeepsList(t *testing.T) {
	fb := newFakeBackend(t)
	fb.failAll = true
	seeded := models.Form{ID: 5, Name: "Existing", Parameters: []models.Parameter{{ID: 1, FormID: 5, Name: "Color"}}}
	engine := newTestEngine(t, fb, []models.Form{seeded})
	engine.SelectForm(seeded)

	err := engine.DeleteParameter(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, conerr.IsServer(err))
	assert.Len(t, engine.Parameters(), 1, "removal happens only after the backend confirms")
}

// ==========================
// Validation Tests
// ==========================

func TestEngine_Validation_NoRequestDispatched(t *testing.T) {
	tests := []struct {
		name         string
		run          func(e *Engine) error
		expectedCode conerr.ErrorCode
	}{
		{
			name: "empty form name",
			run: func(e *Engine) error {
				_, err := e.CreateForm(context.Background(), "   ")
				return err
			},
			expectedCode: conerr.ErrCodeValidationFailed,
		},
		{
			name: "empty parameter name",
			run: func(e *Engine) error {
				e.SelectForm(models.Form{ID: 5})
				_, err := e.AddParameter(context.Background(), models.ParameterSpec{Type: models.ParameterTypeText})
				return err
			},
			expectedCode: conerr.ErrCodeValidationFailed,
		},
		{
			name: "empty parameter type",
			run: func(e *Engine) error {
				e.SelectForm(models.Form{ID: 5})
				_, err := e.AddParameter(context.Background(), models.ParameterSpec{Name: "Panel Count"})
				return err
			},
			expectedCode: conerr.ErrCodeValidationFailed,
		},
		{
			name: "select parameter without choices",
			run: func(e *Engine) error {
				e.SelectForm(models.Form{ID: 5})
				_, err := e.AddParameter(context.Background(), models.ParameterSpec{Name: "Color", Type: models.ParameterTypeSelect})
				return err
			},
			expectedCode: conerr.ErrCodeValidationFailed,
		},
		{
			name: "add parameter with no selection",
			run: func(e *Engine) error {
				_, err := e.AddParameter(context.Background(), models.ParameterSpec{Name: "Panel Count", Type: models.ParameterTypeNumber})
				return err
			},
			expectedCode: conerr.ErrCodeNoFormSelected,
		},
		{
			name: "delete parameter with no selection",
			run: func(e *Engine) error {
				return e.DeleteParameter(context.Background(), 1)
			},
			expectedCode: conerr.ErrCodeNoFormSelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t)
			engine := newTestEngine(t, fb, nil)

			err := tt.run(engine)
			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, conerr.CodeOf(err))
			assert.True(t, conerr.IsValidation(err))
			assert.Zero(t, fb.requestCount(), "validation failures must not reach the backend")
		})
	}
}

func TestEngine_NonSelectChoicesDropped(t *testing.T) {
	fb := newFakeBackend(t)
	engine := newTestEngine(t, fb, nil)
	engine.SelectForm(models.Form{ID: 5})

	param, err := engine.AddParameter(context.Background(), models.ParameterSpec{
		Name: "Panel Count", Type: models.ParameterTypeNumber, Choices: "1,2,3",
	})
	require.NoError(t, err)
	assert.Empty(t, param.Choices)
}
