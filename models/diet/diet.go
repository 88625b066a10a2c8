package diet

import (
	"errors"
	"time"
)

var ErrDietNotFound = errors.New("diet not found")

// Diet represents a diet plan assigned to a member
type Diet struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	Title     string    `json:"title,omitempty"`
	Plan      string    `json:"plan,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined from members
	UserID string `json:"user_id,omitempty"`
}

// Repository is the persistence contract for diet plans
type Repository interface {
	ListAll() ([]*Diet, error)
	ListByMember(memberID string) ([]*Diet, error)
	FindByID(id string) (*Diet, error)
	Create(d *Diet) error
	Update(d *Diet) error
	Delete(id string) error
}
