// Package model defines the core domain models used throughout the application.
package model

import "time"

// Campaign represents a betting campaign tracked against the backend.
// All monetary fields are in base currency units (USD).
type Campaign struct {
	CreatedAt        time.Time `json:"created_at"`
	Name             string    `json:"name"`
	ID               int64     `json:"id"`
	StartBalance     float64   `json:"start_balance"`
	CurrentBalance   float64   `json:"current_balance"`
	TotalDeposits    float64   `json:"total_deposits"`
	TotalWithdrawals float64   `json:"total_withdrawals"`
}
