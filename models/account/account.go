package account

import (
	"errors"
	"time"
)

var (
	ErrIdentityExists  = errors.New("email or username already exists")
	ErrAccountNotFound = errors.New("account not found")
)

// Role is the closed set of access levels an account can hold
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleUser   Role = "user"
)

// Valid reports whether r is one of the known roles. Role strings
// cross trust boundaries (registration input, token claims, store
// reads) and are checked at each of them.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleUser:
		return true
	}
	return false
}

// Account represents a user account
type Account struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       Role      `json:"role"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Profile is the update-profile payload
type Profile struct {
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	City       string
	State      string
	PostalCode string
}

// Repository is the persistence contract for accounts
type Repository interface {
	Create(id, username, email, passwordHash, firstName, lastName string, role Role, active bool) (*Account, error)
	FindByEmail(email string) (*Account, error)
	FindByID(id string) (*Account, error)
	IdentityExists(email, username string) (bool, error)
	UpdateProfile(id string, p Profile) error
	UpdatePassword(id, passwordHash string) error
}
