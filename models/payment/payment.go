package payment

import (
	"errors"
	"time"
)

var ErrPaymentNotFound = errors.New("payment not found")

// Method is the closed set of accepted payment methods
var ValidMethods = map[string]bool{
	"cash":   true,
	"card":   true,
	"upi":    true,
	"cheque": true,
}

// Payment represents a received payment
type Payment struct {
	ID             string    `json:"id"`
	MemberID       string    `json:"member_id"`
	SubscriptionID *string   `json:"subscription_id,omitempty"`
	Amount         float64   `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
	PaymentDate    time.Time `json:"payment_date"`
	TransactionID  *string   `json:"transaction_id,omitempty"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Joined from users
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Stats summarises all payments
type Stats struct {
	Total       int     `json:"total"`
	TotalAmount float64 `json:"total_amount"`
}

// Repository is the persistence contract for payments
type Repository interface {
	Create(p *Payment) error
	List(page, limit int) ([]*Payment, int, error)
	ListByMember(memberID string, page, limit int) ([]*Payment, int, error)
	FindByID(id string) (*Payment, error)
	GetStats() (*Stats, error)
}
