package domain

import "time"

// Package represents a venue package from the catalog
// Consulted for price display and denormalized into bookings; scheduling
// logic never depends on it
type Package struct {
	ID          int64
	Name        string
	Price       float64
	Description *string
	Active      bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
