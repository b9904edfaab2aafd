package models

import (
	"strconv"
	"strings"
)

// ParameterType enumerates the field kinds a form parameter can take.
type ParameterType string

const (
	ParameterTypeText   ParameterType = "text"
	ParameterTypeNumber ParameterType = "number"
	ParameterTypeSelect ParameterType = "select"
)

// Form is an ordered, named collection of parameters owned by a formable
// partner. Parameter order is significant and preserved across operations.
type Form struct {
	ID         int64       `json:"id"`
	PartnerID  int64       `json:"partnerId"`
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

// Parameter is one typed field of a form. A parameter never exists without
// an owning form.
type Parameter struct {
	ID          int64         `json:"id"`
	FormID      int64         `json:"formId"`
	Name        string        `json:"name"`
	Type        ParameterType `json:"type"`
	Choices     string        `json:"choices"`     // comma-separated, select type only
	PriceEffect string        `json:"priceEffect"` // signed delta applied to the computed price
}

// ChoiceList splits the comma-separated choices, preserving order.
func (p Parameter) ChoiceList() []string {
	if strings.TrimSpace(p.Choices) == "" {
		return nil
	}
	parts := strings.Split(p.Choices, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PriceDelta parses the price effect. A blank effect is zero.
func (p Parameter) PriceDelta() (float64, error) {
	s := strings.TrimSpace(p.PriceEffect)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ParameterSpec is the operator-entered payload for a new parameter. FormID
// is stamped by the engine from the current selection.
type ParameterSpec struct {
	Name        string        `json:"name"`
	Type        ParameterType `json:"type"`
	Choices     string        `json:"choices"`
	PriceEffect string        `json:"priceEffect"`
}
