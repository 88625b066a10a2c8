package supplement

import (
	"errors"
	"time"
)

var ErrSupplementNotFound = errors.New("supplement not found")

// Supplement represents a store inventory item
type Supplement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Repository is the persistence contract for supplements
type Repository interface {
	ListActive() ([]*Supplement, error)
	FindByID(id string) (*Supplement, error)
	Create(s *Supplement) error
	Update(s *Supplement) error
	Delete(id string) error
}
