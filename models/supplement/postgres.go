package supplement

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/GymDesk/gymdesk/connections"
)

// Postgres is the PostgreSQL repository for supplements
type Postgres struct{}

// ListActive returns all active supplements
func (p *Postgres) ListActive() ([]*Supplement, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	rows, err := pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), price, stock, is_active, created_at, updated_at
		FROM supplements
		WHERE is_active = true
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Supplement{}
	for rows.Next() {
		var s Supplement
		err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Stock, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &s)
	}

	return items, rows.Err()
}

// FindByID finds a supplement by ID
func (p *Postgres) FindByID(id string) (*Supplement, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var s Supplement
	err := pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(description, ''), price, stock, is_active, created_at, updated_at
		FROM supplements
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Stock, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSupplementNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a new supplement
func (p *Postgres) Create(s *Supplement) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		INSERT INTO supplements (id, name, description, price, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, s.ID, s.Name, s.Description, s.Price, s.Stock, s.IsActive)

	return err
}

// Update updates a supplement
func (p *Postgres) Update(s *Supplement) error {
	ctx := context.Background()
	pool := connections.Postgres()

	tag, err := pool.Exec(ctx, `
		UPDATE supplements
		SET name = $1, description = $2, price = $3, stock = $4, is_active = $5, updated_at = now()
		WHERE id = $6
	`, s.Name, s.Description, s.Price, s.Stock, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSupplementNotFound
	}
	return nil
}

// Delete deletes a supplement
func (p *Postgres) Delete(id string) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `DELETE FROM supplements WHERE id = $1`, id)
	return err
}
