package entities

import (
	"time"
)

// Lawyer is a marketplace profile users browse and book against.
type Lawyer struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Specialty    string    `json:"specialty" db:"specialty"`
	City         string    `json:"city" db:"city"`
	Bio          string    `json:"bio" db:"bio"`
	LicenseNo    string    `json:"license_no" db:"license_no"`
	Rating       float64   `json:"rating" db:"rating"` // 0-5
	ConsultCount int       `json:"consult_count" db:"consult_count"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
