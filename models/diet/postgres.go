package diet

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/GymDesk/gymdesk/connections"
)

// Postgres is the PostgreSQL repository for diet plans
type Postgres struct{}

// ListAll returns every diet plan with its member's account id
func (p *Postgres) ListAll() ([]*Diet, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	rows, err := pool.Query(ctx, `
		SELECT d.id, d.member_id, COALESCE(d.title, ''), COALESCE(d.plan, ''), COALESCE(d.notes, ''),
		       d.created_at, d.updated_at, COALESCE(m.user_id, '')
		FROM diets d
		LEFT JOIN members m ON d.member_id = m.id
		ORDER BY d.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Diet{}
	for rows.Next() {
		var d Diet
		err := rows.Scan(&d.ID, &d.MemberID, &d.Title, &d.Plan, &d.Notes, &d.CreatedAt, &d.UpdatedAt, &d.UserID)
		if err != nil {
			return nil, err
		}
		items = append(items, &d)
	}

	return items, rows.Err()
}

// ListByMember returns a member's diet plans
func (p *Postgres) ListByMember(memberID string) ([]*Diet, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	rows, err := pool.Query(ctx, `
		SELECT id, member_id, COALESCE(title, ''), COALESCE(plan, ''), COALESCE(notes, ''), created_at, updated_at
		FROM diets
		WHERE member_id = $1
		ORDER BY created_at DESC
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Diet{}
	for rows.Next() {
		var d Diet
		err := rows.Scan(&d.ID, &d.MemberID, &d.Title, &d.Plan, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &d)
	}

	return items, rows.Err()
}

// FindByID finds a diet plan by ID
func (p *Postgres) FindByID(id string) (*Diet, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var d Diet
	err := pool.QueryRow(ctx, `
		SELECT id, member_id, COALESCE(title, ''), COALESCE(plan, ''), COALESCE(notes, ''), created_at, updated_at
		FROM diets
		WHERE id = $1
	`, id).Scan(&d.ID, &d.MemberID, &d.Title, &d.Plan, &d.Notes, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDietNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Create inserts a new diet plan
func (p *Postgres) Create(d *Diet) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		INSERT INTO diets (id, member_id, title, plan, notes)
		VALUES ($1, $2, $3, $4, $5)
	`, d.ID, d.MemberID, d.Title, d.Plan, d.Notes)

	return err
}

// Update updates a diet plan
func (p *Postgres) Update(d *Diet) error {
	ctx := context.Background()
	pool := connections.Postgres()

	tag, err := pool.Exec(ctx, `
		UPDATE diets SET title = $1, plan = $2, notes = $3, updated_at = now() WHERE id = $4
	`, d.Title, d.Plan, d.Notes, d.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDietNotFound
	}
	return nil
}

// Delete deletes a diet plan
func (p *Postgres) Delete(id string) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `DELETE FROM diets WHERE id = $1`, id)
	return err
}
