package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GymDesk/gymdesk/connections"
)

const accountColumns = `id, username, email, password, COALESCE(first_name, ''), COALESCE(last_name, ''), role,
	COALESCE(phone, ''), COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(postal_code, ''),
	is_active, created_at, updated_at`

// Postgres is the PostgreSQL repository for accounts
type Postgres struct{}

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.Password,
		&a.FirstName,
		&a.LastName,
		&a.Role,
		&a.Phone,
		&a.Address,
		&a.City,
		&a.State,
		&a.PostalCode,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create creates a new account
func (p *Postgres) Create(id, username, email, passwordHash, firstName, lastName string, role Role, active bool) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	row := pool.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+accountColumns+`
	`, id, username, email, passwordHash, firstName, lastName, role, active)

	acc, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrIdentityExists
		}
		return nil, err
	}
	return acc, nil
}

// FindByEmail finds an account by email. Inactive accounts are
// returned too; the login flow decides what to do with them.
func (p *Postgres) FindByEmail(email string) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanAccount(pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

// FindByID finds an account by ID
func (p *Postgres) FindByID(id string) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanAccount(pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

// IdentityExists reports whether an account with the given email or
// username already exists
func (p *Postgres) IdentityExists(email, username string) (bool, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)
	`, email, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateProfile updates the mutable profile fields of an account
func (p *Postgres) UpdateProfile(id string, prof Profile) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, address = $4, city = $5, state = $6, postal_code = $7, updated_at = now()
		WHERE id = $8
	`, prof.FirstName, prof.LastName, prof.Phone, prof.Address, prof.City, prof.State, prof.PostalCode, id)

	return err
}

// UpdatePassword overwrites the stored password hash
func (p *Postgres) UpdatePassword(id, passwordHash string) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		UPDATE users
		SET password = $1, updated_at = now()
		WHERE id = $2
	`, passwordHash, id)

	return err
}
