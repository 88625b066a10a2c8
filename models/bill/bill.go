package bill

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

var ErrBillNotFound = errors.New("bill not found")

// ValidStatuses is the bill lifecycle after generation
var ValidStatuses = map[string]bool{
	"generated":  true,
	"emailed":    true,
	"downloaded": true,
	"printed":    true,
}

// Bill represents a generated bill for a payment
type Bill struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"member_id"`
	PaymentID  string    `json:"payment_id"`
	BillNumber string    `json:"bill_number"`
	BillDate   time.Time `json:"bill_date"`
	Amount     float64   `json:"amount"`
	Tax        float64   `json:"tax"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Joined from users/members
	Username         string `json:"username,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	MembershipStatus string `json:"membership_status,omitempty"`
}

// GenerateBillNumber produces a unique human-readable bill number
func GenerateBillNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % 10000)
	}
	return fmt.Sprintf("BILL-%d-%04d", time.Now().UnixMilli(), n.Int64())
}

// CalculateTotal applies a percentage tax to an amount
func CalculateTotal(amount, taxPercent float64) (tax, total float64) {
	tax = amount * taxPercent / 100
	return tax, amount + tax
}

// Repository is the persistence contract for bills
type Repository interface {
	Create(b *Bill) error
	List(page, limit int) ([]*Bill, int, error)
	ListByMember(memberID string, page, limit int) ([]*Bill, int, error)
	ListAllDetailed() ([]*Bill, error)
	FindByID(id string) (*Bill, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
	GetStats() (*Stats, error)
}

// Stats summarises generated bills
type Stats struct {
	Total   int     `json:"total"`
	Revenue float64 `json:"revenue"`
}
