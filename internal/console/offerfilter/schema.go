package offerfilter

// offerSnapshotSchema validates externally ingested offer documents before
// they enter the catalog. The ingestion pipeline is outside this codebase,
// so its output is not trusted blindly.
var offerSnapshotSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"uuid", "title", "zip_codes"},
	"properties": map[string]interface{}{
		"uuid": map[string]interface{}{
			"type":      "string",
			"minLength": 36,
			"maxLength": 36,
		},
		"title": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"term_months": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
		},
		"kwh_rate": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
		},
		"price_1000_kwh": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
		},
		"renewable_energy": map[string]interface{}{
			"type": "boolean",
		},
		"description_en": map[string]interface{}{
			"type": "string",
		},
		"zip_codes": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "string",
			},
		},
	},
}
