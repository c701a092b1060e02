package repository

import "bikedash/internal/model"

// YearTotal is the rental sum stored for one year.
type YearTotal struct {
	Year  int   `db:"year" json:"year"`
	Total int64 `db:"total" json:"total"`
}

// RentalRepository defines the operations on a stored dataset snapshot.
type RentalRepository interface {
	// Create operations
	InsertBatch(records []model.RentalRecord) error
	ReplaceAll(records []model.RentalRecord) error

	// Read operations
	GetAll() ([]model.RentalRecord, error)
	Count() (int, error)
	YearTotals() ([]YearTotal, error)

	// Delete operations
	DeleteAll() error
}
