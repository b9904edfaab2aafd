package models

// OfferSnapshot is an immutable pricing/offer record produced by an external
// ingestion process. Identity is the UUID; the catalog is read-only here.
type OfferSnapshot struct {
	UUID            string   `json:"uuid"`
	Title           string   `json:"title"`
	TermMonths      int      `json:"term_months"`
	KwhRate         float64  `json:"kwh_rate"`
	Price1000Kwh    float64  `json:"price_1000_kwh"`
	RenewableEnergy bool     `json:"renewable_energy"`
	DescriptionEn   string   `json:"description_en"`
	ZipCodes        []string `json:"zip_codes"`
}

// HasZipCode reports whether the offer covers the given postal code.
func (o OfferSnapshot) HasZipCode(zip string) bool {
	for _, z := range o.ZipCodes {
		if z == zip {
			return true
		}
	}
	return false
}
