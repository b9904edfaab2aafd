// Package formengine manages the dynamic intake forms of one formable
// partner: form creation, form selection, and the ordered parameter list of
// the selected form.
package formengine

import (
	"context"
	"strings"
	"sync"

	"admin-console/internal/backend"
	conerr "admin-console/internal/common/errors"
	"admin-console/internal/common/logger"
	"admin-console/internal/models"
)

// Engine is a two-state machine: NoFormSelected and FormSelected. Form
// selection is the only transition that never touches the network;
// parameter add/delete are self-loops on FormSelected and are rejected
// client-side while no form is selected.
type Engine struct {
	mu        sync.Mutex
	backend   *backend.Client
	log       logger.Logger
	partnerID int64

	forms        []models.Form
	selectedForm *models.Form
	parameters   []models.Parameter
}

// NewEngine seeds the engine with the forms fetched for one formable
// partner. Simple partners never get an engine; the detail aggregator gates
// construction on partner type.
func NewEngine(client *backend.Client, log logger.Logger, partnerID int64, forms []models.Form) *Engine {
	e := &Engine{
		backend:   client,
		log:       log.WithFields(map[string]interface{}{"component": "form-engine", "partnerId": partnerID}),
		partnerID: partnerID,
	}
	e.forms = make([]models.Form, len(forms))
	copy(e.forms, forms)
	return e
}

// Forms returns the known forms for the partner.
func (e *Engine) Forms() []models.Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Form, len(e.forms))
	copy(out, e.forms)
	return out
}

// SelectedForm returns the current selection, or nil.
func (e *Engine) SelectedForm() *models.Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selectedForm == nil {
		return nil
	}
	form := *e.selectedForm
	return &form
}

// Parameters returns the parameter list of the selected form.
func (e *Engine) Parameters() []models.Parameter {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Parameter, len(e.parameters))
	copy(out, e.parameters)
	return out
}

// CreateForm creates a named, empty form. The returned form is appended to
// the collection but not auto-selected.
func (e *Engine) CreateForm(ctx context.Context, name string) (*models.Form, error) {
	if strings.TrimSpace(name) == "" {
		return nil, conerr.NewValidationError("name", "form name must not be empty")
	}

	form, err := e.backend.CreateForm(ctx, e.partnerID, name)
	if err != nil {
		e.log.Error("form create failed", map[string]interface{}{"name": name, "error": err.Error()})
		return nil, err
	}

	e.mu.Lock()
	e.forms = append(e.forms, *form)
	e.mu.Unlock()

	e.log.Info("form created", map[string]interface{}{"formId": form.ID, "name": form.Name})
	return form, nil
}

// SelectForm makes the form current and seeds the parameter list from a
// snapshot of its parameters. Purely local; never touches the network.
func (e *Engine) SelectForm(form models.Form) {
	e.mu.Lock()
	defer e.mu.Unlock()
	selected := form
	e.selectedForm = &selected
	e.parameters = make([]models.Parameter, len(form.Parameters))
	copy(e.parameters, form.Parameters)
}

// DeselectForm clears the selection and the parameter list.
func (e *Engine) DeselectForm() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectedForm = nil
	e.parameters = nil
}

// AddParameter validates the spec, posts it under the selected form, and
// appends the returned parameter to the local list. The cached form in
// Forms() is intentionally not reconciled; re-selecting the same form from
// that cache reseeds from its stale parameter snapshot.
func (e *Engine) AddParameter(ctx context.Context, spec models.ParameterSpec) (*models.Parameter, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, conerr.NewValidationError("name", "parameter name must not be empty")
	}
	if spec.Type == "" {
		return nil, conerr.NewValidationError("type", "parameter type must not be empty")
	}
	if spec.Type == models.ParameterTypeSelect && strings.TrimSpace(spec.Choices) == "" {
		return nil, conerr.NewValidationError("choices", "select parameters need at least one choice")
	}
	if spec.Type != models.ParameterTypeSelect {
		// Choices are meaningful for select parameters only.
		spec.Choices = ""
	}

	e.mu.Lock()
	if e.selectedForm == nil {
		e.mu.Unlock()
		return nil, conerr.NewNoFormSelectedError("addParameter")
	}
	formID := e.selectedForm.ID
	e.mu.Unlock()

	param, err := e.backend.CreateParameter(ctx, e.partnerID, spec, formID)
	if err != nil {
		e.log.Error("parameter create failed", map[string]interface{}{"formId": formID, "error": err.Error()})
		return nil, err
	}

	e.mu.Lock()
	e.parameters = append(e.parameters, *param)
	e.mu.Unlock()

	return param, nil
}

// DeleteParameter deletes a parameter on the backend and removes it from the
// local list only after the delete is confirmed.
func (e *Engine) DeleteParameter(ctx context.Context, parameterID int64) error {
	e.mu.Lock()
	if e.selectedForm == nil {
		e.mu.Unlock()
		return conerr.NewNoFormSelectedError("deleteParameter")
	}
	e.mu.Unlock()

	if err := e.backend.DeleteParameter(ctx, e.partnerID, parameterID); err != nil {
		e.log.Error("parameter delete failed", map[string]interface{}{"parameterId": parameterID, "error": err.Error()})
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.parameters[:0]
	for _, p := range e.parameters {
		if p.ID != parameterID {
			kept = append(kept, p)
		}
	}
	e.parameters = kept
	return nil
}
