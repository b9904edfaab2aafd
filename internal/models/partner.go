package models

// PartnerType distinguishes plain partners from those that own intake forms.
type PartnerType string

const (
	PartnerTypeSimple   PartnerType = "simple"
	PartnerTypeFormable PartnerType = "formable"
)

// Media slot names, also the multipart field names on media updates.
const (
	SlotLogo             = "logo"
	SlotMarketplaceCover = "marketplace_cover"
	SlotCompanyCover     = "company_cover"
)

// MediaSlots lists every valid slot name in a fixed order.
var MediaSlots = []string{SlotLogo, SlotMarketplaceCover, SlotCompanyCover}

// Partner is an external service provider whose offerings are marketed to
// houses. Form operations are only meaningful for formable partners.
type Partner struct {
	ID                   int64       `json:"id"`
	Name                 string      `json:"name"`
	Description          string      `json:"description"`
	Type                 PartnerType `json:"type"`
	About                string      `json:"about"`
	ImportantInformation string      `json:"important_information"`
	Logo                 string      `json:"logo,omitempty"`
	MarketplaceCover     string      `json:"marketplace_cover,omitempty"`
	CompanyCover         string      `json:"company_cover,omitempty"`
	HousesUsingService   int         `json:"houses_using_service"`
}

// IsFormable reports whether the partner may own intake forms.
func (p Partner) IsFormable() bool {
	return p.Type == PartnerTypeFormable
}

// MediaURL returns the committed reference for the named slot, if any.
func (p Partner) MediaURL(slot string) string {
	switch slot {
	case SlotLogo:
		return p.Logo
	case SlotMarketplaceCover:
		return p.MarketplaceCover
	case SlotCompanyCover:
		return p.CompanyCover
	}
	return ""
}

// PartnerInput is the create/update payload. No client-side validation is
// applied to it; the backend enforces its own rules.
type PartnerInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PartnerPatch is the partial-update payload for the descriptive fields.
type PartnerPatch struct {
	About                string `json:"about"`
	ImportantInformation string `json:"important_information"`
}
