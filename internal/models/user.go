package models

// User is a house member account. Balance, points, credit and status are
// backend-computed aggregates consumed for display.
type User struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	Balance     float64 `json:"balance"`
	Points      int     `json:"points"`
	Credit      float64 `json:"credit"`
	Status      string  `json:"status"`
	HouseName   string  `json:"houseName,omitempty"`
	House       *House  `json:"house,omitempty"`
}

// Task is a unit of work assigned to a user. Status true means completed.
type Task struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Response string `json:"response"`
	Status   bool   `json:"status"`
}
