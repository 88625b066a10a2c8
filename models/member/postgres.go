package member

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/GymDesk/gymdesk/connections"
)

const joinedColumns = `m.id, m.user_id, m.membership_date, m.membership_status,
	COALESCE(m.emergency_contact, ''), COALESCE(m.emergency_phone, ''), COALESCE(m.medical_conditions, ''),
	m.is_active, m.created_at, m.updated_at,
	u.username, u.email, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), COALESCE(u.phone, ''), COALESCE(u.address, '')`

// Postgres is the PostgreSQL repository for members
type Postgres struct{}

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.MembershipDate,
		&m.MembershipStatus,
		&m.EmergencyContact,
		&m.EmergencyPhone,
		&m.MedicalConditions,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.Username,
		&m.Email,
		&m.FirstName,
		&m.LastName,
		&m.Phone,
		&m.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a bare member record linked to an existing account.
// Used by the login backfill and member-role registration.
func (p *Postgres) Create(id, userID string) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		INSERT INTO members (id, user_id) VALUES ($1, $2)
	`, id, userID)

	return err
}

// CreateWithUser creates the account and the member record in one
// transaction, so an admin-added member never ends up half-created.
func (p *Postgres) CreateWithUser(memberID string, user NewUserDetails) error {
	ctx := context.Background()
	pool := connections.Postgres()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, username, email, password, first_name, last_name, phone, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'member', true)
	`, user.UserID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO members (id, user_id, is_active) VALUES ($1, $2, true)
	`, memberID, user.UserID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// FindByID finds a member by ID with its account fields
func (p *Postgres) FindByID(id string) (*Member, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanMember(pool.QueryRow(ctx, `
		SELECT `+joinedColumns+`
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.id = $1
	`, id))
}

// FindByUserID finds the member record linked to an account
func (p *Postgres) FindByUserID(userID string) (*Member, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanMember(pool.QueryRow(ctx, `
		SELECT `+joinedColumns+`
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.user_id = $1
	`, userID))
}

// List returns members with pagination and an optional search query
// over name, email and username. The total count is returned alongside.
func (p *Postgres) List(query string, page, limit int) ([]*Member, int, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int
	var rows pgx.Rows
	var err error

	if query != "" {
		pattern := "%" + query + "%"

		err = pool.QueryRow(ctx, `
			SELECT COUNT(*) FROM members m JOIN users u ON m.user_id = u.id
			WHERE u.first_name ILIKE $1 OR u.last_name ILIKE $1 OR u.email ILIKE $1 OR u.username ILIKE $1
		`, pattern).Scan(&total)
		if err != nil {
			return nil, 0, err
		}

		rows, err = pool.Query(ctx, `
			SELECT `+joinedColumns+`
			FROM members m
			JOIN users u ON m.user_id = u.id
			WHERE u.first_name ILIKE $1 OR u.last_name ILIKE $1 OR u.email ILIKE $1 OR u.username ILIKE $1
			ORDER BY m.created_at DESC
			LIMIT $2 OFFSET $3
		`, pattern, limit, offset)
	} else {
		err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM members`).Scan(&total)
		if err != nil {
			return nil, 0, err
		}

		rows, err = pool.Query(ctx, `
			SELECT `+joinedColumns+`
			FROM members m
			JOIN users u ON m.user_id = u.id
			ORDER BY m.created_at DESC
			LIMIT $1 OFFSET $2
		`, limit, offset)
	}

	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	members := []*Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}

	return members, total, rows.Err()
}

// Update updates the member record and its linked account in one
// transaction
func (p *Postgres) Update(id string, d UpdateDetails) error {
	ctx := context.Background()
	pool := connections.Postgres()

	var userID string
	err := pool.QueryRow(ctx, `SELECT user_id FROM members WHERE id = $1`, id).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMemberNotFound
		}
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, address = $4, city = $5, state = $6, postal_code = $7, updated_at = now()
		WHERE id = $8
	`, d.FirstName, d.LastName, d.Phone, d.Address, d.City, d.State, d.PostalCode, userID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE members
		SET emergency_contact = $1, emergency_phone = $2, medical_conditions = $3,
		    membership_status = COALESCE(NULLIF($4, ''), membership_status), updated_at = now()
		WHERE id = $5
	`, d.EmergencyContact, d.EmergencyPhone, d.MedicalConditions, d.MembershipStatus, id)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete deletes a member record. The account stays; dependent rows
// cascade through the schema's foreign keys.
func (p *Postgres) Delete(id string) error {
	ctx := context.Background()
	pool := connections.Postgres()

	tag, err := pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Exists reports whether a member record exists
func (p *Postgres) Exists(id string) (bool, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var exists bool
	err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// GetStats returns total and active member counts
func (p *Postgres) GetStats() (*Stats, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var s Stats
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE membership_status = 'active')
		FROM members
	`).Scan(&s.Total, &s.Active)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
