package subscription

import (
	"context"
	"time"

	"github.com/GymDesk/gymdesk/connections"
)

// Postgres is the PostgreSQL repository for subscriptions
type Postgres struct{}

// Assign inserts an active subscription for a member. Nil dates fall
// back to the column defaults.
func (p *Postgres) Assign(id, memberID, feePackageID string, startDate, endDate *time.Time) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		INSERT INTO member_subscriptions (id, member_id, fee_package_id, start_date, end_date, status)
		VALUES ($1, $2, $3, COALESCE($4, now()), $5, 'active')
	`, id, memberID, feePackageID, startDate, endDate)

	return err
}

// ListByMember returns a member's subscriptions joined with package details
func (p *Postgres) ListByMember(memberID string) ([]*Subscription, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	rows, err := pool.Query(ctx, `
		SELECT s.id, s.member_id, s.fee_package_id, s.start_date, s.end_date, s.renewal_date,
		       s.status, s.is_active, s.created_at, s.updated_at,
		       f.name, f.monthly_fee
		FROM member_subscriptions s
		JOIN fee_packages f ON s.fee_package_id = f.id
		WHERE s.member_id = $1
		ORDER BY s.start_date DESC
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []*Subscription{}
	for rows.Next() {
		var s Subscription
		err := rows.Scan(&s.ID, &s.MemberID, &s.FeePackageID, &s.StartDate, &s.EndDate, &s.RenewalDate,
			&s.Status, &s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.PackageName, &s.MonthlyFee)
		if err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}

	return subs, rows.Err()
}
