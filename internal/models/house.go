package models

// House is a physical residence entity. Balance, ledger and HSI (house
// status index) are computed by the backend and read-only here.
type House struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
	Ledger  float64 `json:"ledger"`
	HSI     int     `json:"hsi"`
}

// Service links a house to a partner via a chosen service plan. Key casing
// follows the backend's association payloads.
type Service struct {
	ID          int64        `json:"id"`
	Partner     *Partner     `json:"Partner,omitempty"`
	ServicePlan *ServicePlan `json:"ServicePlan,omitempty"`
}

// ServicePlan is one subscription tier of a partner's service.
type ServicePlan struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
