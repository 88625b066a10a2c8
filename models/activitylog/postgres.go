package activitylog

import (
	"context"

	"github.com/GymDesk/gymdesk/connections"
)

// Postgres is the PostgreSQL repository for the audit log
type Postgres struct{}

// Record appends an audit entry
func (p *Postgres) Record(id, userID, action, ipAddress string) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		INSERT INTO activity_logs (id, user_id, action, ip_address)
		VALUES ($1, $2, $3, $4)
	`, id, userID, action, ipAddress)

	return err
}
