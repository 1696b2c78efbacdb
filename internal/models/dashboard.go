package models

import "time"

// DashboardStats summarises the delivery register by lifecycle state.
type DashboardStats struct {
	Total       int       `db:"total" json:"total"`
	Sent        int       `db:"sent" json:"sent"`
	Pending     int       `db:"pending" json:"pending"`
	Failed      int       `db:"failed" json:"failed"`
	GeneratedAt time.Time `db:"-" json:"generated_at"`
}
