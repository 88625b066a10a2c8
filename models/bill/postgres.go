package bill

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/GymDesk/gymdesk/connections"
)

// Postgres is the PostgreSQL repository for bills
type Postgres struct{}

const billColumns = `b.id, b.member_id, b.payment_id, b.bill_number, b.bill_date,
	b.amount, b.tax, b.total, b.status, b.created_at, b.updated_at`

func scanBill(row pgx.Row, extra ...func(*Bill) []interface{}) (*Bill, error) {
	var b Bill
	dest := []interface{}{
		&b.ID, &b.MemberID, &b.PaymentID, &b.BillNumber, &b.BillDate,
		&b.Amount, &b.Tax, &b.Total, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	for _, f := range extra {
		dest = append(dest, f(&b)...)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	return &b, nil
}

func userFields(b *Bill) []interface{} {
	return []interface{}{&b.Username, &b.Email, &b.Phone, &b.Address}
}

func reportFields(b *Bill) []interface{} {
	return []interface{}{&b.FirstName, &b.LastName, &b.Email, &b.Phone, &b.MembershipStatus}
}

// Create inserts a new bill
func (p *Postgres) Create(b *Bill) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		INSERT INTO bills (id, member_id, payment_id, bill_number, amount, tax, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'generated')
	`, b.ID, b.MemberID, b.PaymentID, b.BillNumber, b.Amount, b.Tax, b.Total)

	return err
}

// List returns bills with account fields, newest first
func (p *Postgres) List(page, limit int) ([]*Bill, int, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	var total int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM bills`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := pool.Query(ctx, `
		SELECT `+billColumns+`, u.username, u.email, COALESCE(u.phone, ''), COALESCE(u.address, '')
		FROM bills b
		JOIN members m ON b.member_id = m.id
		JOIN users u ON m.user_id = u.id
		ORDER BY b.bill_date DESC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bills := []*Bill{}
	for rows.Next() {
		b, err := scanBill(rows, userFields)
		if err != nil {
			return nil, 0, err
		}
		bills = append(bills, b)
	}

	return bills, total, rows.Err()
}

// ListByMember returns a member's bills, newest first
func (p *Postgres) ListByMember(memberID string, page, limit int) ([]*Bill, int, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	var total int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM bills WHERE member_id = $1`, memberID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := pool.Query(ctx, `
		SELECT `+billColumns+`
		FROM bills b
		WHERE b.member_id = $1
		ORDER BY b.bill_date DESC
		LIMIT $2 OFFSET $3
	`, memberID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bills := []*Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		bills = append(bills, b)
	}

	return bills, total, rows.Err()
}

// ListAllDetailed returns every bill with the member detail needed for
// the CSV report, newest first
func (p *Postgres) ListAllDetailed() ([]*Bill, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	rows, err := pool.Query(ctx, `
		SELECT `+billColumns+`, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), u.email, COALESCE(u.phone, ''), m.membership_status
		FROM bills b
		JOIN members m ON b.member_id = m.id
		JOIN users u ON m.user_id = u.id
		ORDER BY b.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := []*Bill{}
	for rows.Next() {
		b, err := scanBill(rows, reportFields)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}

	return bills, rows.Err()
}

// FindByID finds a bill with account fields
func (p *Postgres) FindByID(id string) (*Bill, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanBill(pool.QueryRow(ctx, `
		SELECT `+billColumns+`, u.username, u.email, COALESCE(u.phone, ''), COALESCE(u.address, '')
		FROM bills b
		JOIN members m ON b.member_id = m.id
		JOIN users u ON m.user_id = u.id
		WHERE b.id = $1
	`, id), userFields)
}

// UpdateStatus moves a bill along its status lifecycle
func (p *Postgres) UpdateStatus(id, status string) error {
	ctx := context.Background()
	pool := connections.Postgres()

	tag, err := pool.Exec(ctx, `
		UPDATE bills SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}

// Delete deletes a bill
func (p *Postgres) Delete(id string) error {
	ctx := context.Background()
	pool := connections.Postgres()

	tag, err := pool.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}

// GetStats returns bill count and total revenue
func (p *Postgres) GetStats() (*Stats, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var s Stats
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0) FROM bills
	`).Scan(&s.Total, &s.Revenue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
