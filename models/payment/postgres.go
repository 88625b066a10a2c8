package payment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/GymDesk/gymdesk/connections"
)

// Postgres is the PostgreSQL repository for payments
type Postgres struct{}

const paymentColumns = `p.id, p.member_id, p.subscription_id, p.amount, p.payment_method, p.payment_date,
	p.transaction_id, p.status, COALESCE(p.notes, ''), p.created_at, p.updated_at`

func scanPayment(row pgx.Row, joined bool) (*Payment, error) {
	var pm Payment
	dest := []interface{}{
		&pm.ID, &pm.MemberID, &pm.SubscriptionID, &pm.Amount, &pm.PaymentMethod, &pm.PaymentDate,
		&pm.TransactionID, &pm.Status, &pm.Notes, &pm.CreatedAt, &pm.UpdatedAt,
	}
	if joined {
		dest = append(dest, &pm.Username, &pm.Email)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &pm, nil
}

// Create inserts a completed payment
func (p *Postgres) Create(pm *Payment) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		INSERT INTO payments (id, member_id, subscription_id, amount, payment_method, transaction_id, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, 'completed', $7)
	`, pm.ID, pm.MemberID, pm.SubscriptionID, pm.Amount, pm.PaymentMethod, pm.TransactionID, pm.Notes)

	return err
}

// List returns payments with account fields, newest first
func (p *Postgres) List(page, limit int) ([]*Payment, int, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	var total int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := pool.Query(ctx, `
		SELECT `+paymentColumns+`, u.username, u.email
		FROM payments p
		JOIN members m ON p.member_id = m.id
		JOIN users u ON m.user_id = u.id
		ORDER BY p.payment_date DESC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	payments := []*Payment{}
	for rows.Next() {
		pm, err := scanPayment(rows, true)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, pm)
	}

	return payments, total, rows.Err()
}

// ListByMember returns a member's payments, newest first
func (p *Postgres) ListByMember(memberID string, page, limit int) ([]*Payment, int, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	var total int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE member_id = $1`, memberID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments p
		WHERE p.member_id = $1
		ORDER BY p.payment_date DESC
		LIMIT $2 OFFSET $3
	`, memberID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	payments := []*Payment{}
	for rows.Next() {
		pm, err := scanPayment(rows, false)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, pm)
	}

	return payments, total, rows.Err()
}

// FindByID finds a payment with account fields
func (p *Postgres) FindByID(id string) (*Payment, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanPayment(pool.QueryRow(ctx, `
		SELECT `+paymentColumns+`, u.username, u.email
		FROM payments p
		JOIN members m ON p.member_id = m.id
		JOIN users u ON m.user_id = u.id
		WHERE p.id = $1
	`, id), true)
}

// GetStats returns payment count and amount totals
func (p *Postgres) GetStats() (*Stats, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var s Stats
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM payments
	`).Scan(&s.Total, &s.TotalAmount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
