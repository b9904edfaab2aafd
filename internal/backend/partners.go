package backend

import (
	"context"
	"fmt"
	"net/http"

	"admin-console/internal/models"
)

const (
	resourcePartners   = "partners"
	resourceForms      = "forms"
	resourceParameters = "parameters"
)

// partnerEnvelope mirrors the single-partner read response.
type partnerEnvelope struct {
	Partner models.Partner `json:"partner"`
}

type formEnvelope struct {
	Form models.Form `json:"form"`
}

type parameterEnvelope struct {
	Parameter models.Parameter `json:"parameter"`
}

// ListPartners returns every partner record.
func (c *Client) ListPartners(ctx context.Context) ([]models.Partner, error) {
	var partners []models.Partner
	if err := c.doJSON(ctx, http.MethodGet, resourcePartners, "/partners", nil, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

// GetPartner returns one partner record. The backend wraps it in a
// {"partner": ...} envelope.
func (c *Client) GetPartner(ctx context.Context, id int64) (*models.Partner, error) {
	var env partnerEnvelope
	if err := c.doJSON(ctx, http.MethodGet, resourcePartners, fmt.Sprintf("/partners/%d", id), nil, &env); err != nil {
		return nil, err
	}
	return &env.Partner, nil
}

// CreatePartner creates a partner. Input is forwarded as-is; the backend
// enforces its own validation rules.
func (c *Client) CreatePartner(ctx context.Context, input models.PartnerInput) (*models.Partner, error) {
	var partner models.Partner
	if err := c.doJSON(ctx, http.MethodPost, resourcePartners, "/partners", input, &partner); err != nil {
		return nil, err
	}
	return &partner, nil
}

// UpdatePartner replaces the partner's editable fields.
func (c *Client) UpdatePartner(ctx context.Context, id int64, input models.PartnerInput) (*models.Partner, error) {
	var partner models.Partner
	if err := c.doJSON(ctx, http.MethodPut, resourcePartners, fmt.Sprintf("/partners/%d", id), input, &partner); err != nil {
		return nil, err
	}
	return &partner, nil
}

// PatchPartner updates the descriptive fields (about, important information).
func (c *Client) PatchPartner(ctx context.Context, id int64, patch models.PartnerPatch) error {
	return c.doJSON(ctx, http.MethodPatch, resourcePartners, fmt.Sprintf("/partners/%d", id), patch, nil)
}

// DeletePartner removes a partner record.
func (c *Client) DeletePartner(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, resourcePartners, fmt.Sprintf("/partners/%d", id), nil, nil)
}

// UpdatePartnerMedia sends one multipart update carrying the staged files
// (slot name -> local path) and returns the committed URL per updated slot.
func (c *Client) UpdatePartnerMedia(ctx context.Context, id int64, files map[string]string) (map[string]string, error) {
	var echoed map[string]interface{}
	if err := c.doMultipart(ctx, http.MethodPatch, resourcePartners, fmt.Sprintf("/partners/%d", id), files, &echoed); err != nil {
		return nil, err
	}

	urls := make(map[string]string, len(files))
	for _, slot := range models.MediaSlots {
		if v, ok := echoed[slot].(string); ok && v != "" {
			urls[slot] = v
		}
	}
	return urls, nil
}

// ListForms returns the partner's forms with their ordered parameters.
func (c *Client) ListForms(ctx context.Context, partnerID int64) ([]models.Form, error) {
	var forms []models.Form
	if err := c.doJSON(ctx, http.MethodGet, resourceForms, fmt.Sprintf("/partners/%d/forms", partnerID), nil, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

// CreateForm creates a named, empty form under the partner.
func (c *Client) CreateForm(ctx context.Context, partnerID int64, name string) (*models.Form, error) {
	payload := map[string]string{"name": name}
	var env formEnvelope
	if err := c.doJSON(ctx, http.MethodPost, resourceForms, fmt.Sprintf("/partners/%d/forms", partnerID), payload, &env); err != nil {
		return nil, err
	}
	return &env.Form, nil
}

// CreateParameter appends a parameter to the form named in the payload.
func (c *Client) CreateParameter(ctx context.Context, partnerID int64, spec models.ParameterSpec, formID int64) (*models.Parameter, error) {
	payload := struct {
		models.ParameterSpec
		FormID int64 `json:"formId"`
	}{ParameterSpec: spec, FormID: formID}

	var env parameterEnvelope
	if err := c.doJSON(ctx, http.MethodPost, resourceParameters, fmt.Sprintf("/partners/%d/forms/parameters", partnerID), payload, &env); err != nil {
		return nil, err
	}
	return &env.Parameter, nil
}

// DeleteParameter removes one parameter by id.
func (c *Client) DeleteParameter(ctx context.Context, partnerID, parameterID int64) error {
	return c.doJSON(ctx, http.MethodDelete, resourceParameters, fmt.Sprintf("/partners/%d/forms/parameters/%d", partnerID, parameterID), nil, nil)
}
