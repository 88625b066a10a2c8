package subscription

import (
	"errors"
	"time"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// Subscription links a member to a fee package for a period
type Subscription struct {
	ID           string     `json:"id"`
	MemberID     string     `json:"member_id"`
	FeePackageID string     `json:"fee_package_id"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	RenewalDate  *time.Time `json:"renewal_date,omitempty"`
	Status       string     `json:"status"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Joined from fee_packages
	PackageName string  `json:"package_name,omitempty"`
	MonthlyFee  float64 `json:"monthly_fee,omitempty"`
}

// Repository is the persistence contract for subscriptions
type Repository interface {
	Assign(id, memberID, feePackageID string, startDate, endDate *time.Time) error
	ListByMember(memberID string) ([]*Subscription, error)
}
