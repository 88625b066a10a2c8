package member

import (
	"errors"
	"time"
)

var (
	ErrMemberNotFound = errors.New("member not found")
)

// Member represents a gym member record joined with its account fields
type Member struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	MembershipDate    time.Time `json:"membership_date"`
	MembershipStatus  string    `json:"membership_status"`
	EmergencyContact  string    `json:"emergency_contact,omitempty"`
	EmergencyPhone    string    `json:"emergency_phone,omitempty"`
	MedicalConditions string    `json:"medical_conditions,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Joined from users
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// NewUserDetails carries the account fields for admin member creation
type NewUserDetails struct {
	UserID       string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
}

// UpdateDetails carries the mutable fields of a member and its account
type UpdateDetails struct {
	FirstName         string
	LastName          string
	Phone             string
	Address           string
	City              string
	State             string
	PostalCode        string
	EmergencyContact  string
	EmergencyPhone    string
	MedicalConditions string
	MembershipStatus  string
}

// Stats summarises the member base
type Stats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// Repository is the persistence contract for members
type Repository interface {
	Create(id, userID string) error
	CreateWithUser(memberID string, user NewUserDetails) error
	FindByID(id string) (*Member, error)
	FindByUserID(userID string) (*Member, error)
	List(query string, page, limit int) ([]*Member, int, error)
	Update(id string, d UpdateDetails) error
	Delete(id string) error
	Exists(id string) (bool, error)
	GetStats() (*Stats, error)
}
