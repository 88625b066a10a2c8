package feepackage

import (
	"context"

	"github.com/GymDesk/gymdesk/connections"
)

// Postgres is the PostgreSQL repository for fee packages
type Postgres struct{}

// ListActive returns all active fee packages
func (p *Postgres) ListActive() ([]*FeePackage, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	rows, err := pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), monthly_fee, duration_days, COALESCE(benefits, ''), is_active, created_at, updated_at
		FROM fee_packages
		WHERE is_active = true
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := []*FeePackage{}
	for rows.Next() {
		var fp FeePackage
		err := rows.Scan(&fp.ID, &fp.Name, &fp.Description, &fp.MonthlyFee, &fp.DurationDays, &fp.Benefits, &fp.IsActive, &fp.CreatedAt, &fp.UpdatedAt)
		if err != nil {
			return nil, err
		}
		packages = append(packages, &fp)
	}

	return packages, rows.Err()
}

// Create inserts a new fee package
func (p *Postgres) Create(fp *FeePackage) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		INSERT INTO fee_packages (id, name, description, monthly_fee, duration_days, benefits, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, fp.ID, fp.Name, fp.Description, fp.MonthlyFee, fp.DurationDays, fp.Benefits, fp.IsActive)

	return err
}

// Update updates a fee package
func (p *Postgres) Update(fp *FeePackage) error {
	ctx := context.Background()
	pool := connections.Postgres()

	tag, err := pool.Exec(ctx, `
		UPDATE fee_packages
		SET name = $1, description = $2, monthly_fee = $3, duration_days = $4, benefits = $5, is_active = $6, updated_at = now()
		WHERE id = $7
	`, fp.Name, fp.Description, fp.MonthlyFee, fp.DurationDays, fp.Benefits, fp.IsActive, fp.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPackageNotFound
	}
	return nil
}

// Delete deletes a fee package
func (p *Postgres) Delete(id string) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `DELETE FROM fee_packages WHERE id = $1`, id)
	return err
}
