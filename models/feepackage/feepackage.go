package feepackage

import (
	"errors"
	"time"
)

var ErrPackageNotFound = errors.New("fee package not found")

// FeePackage represents a membership fee plan
type FeePackage struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	MonthlyFee   float64   `json:"monthly_fee"`
	DurationDays *int      `json:"duration_days,omitempty"`
	Benefits     string    `json:"benefits,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Repository is the persistence contract for fee packages
type Repository interface {
	ListActive() ([]*FeePackage, error)
	Create(p *FeePackage) error
	Update(p *FeePackage) error
	Delete(id string) error
}
