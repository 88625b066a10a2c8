package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/GymDesk/gymdesk/connections"
)

// Postgres is the PostgreSQL repository for notifications
type Postgres struct{}

// Create inserts an unread notification
func (p *Postgres) Create(n *Notification) error {
	ctx := context.Background()
	pool := connections.Postgres()

	_, err := pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, is_read, scheduled_date)
		VALUES ($1, $2, $3, $4, $5, false, $6)
	`, n.ID, n.UserID, n.Title, n.Message, n.Type, n.ScheduledDate)

	return err
}

// ListByUser returns a user's notifications, unread first
func (p *Postgres) ListByUser(userID string) ([]*Notification, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	rows, err := pool.Query(ctx, `
		SELECT id, user_id, title, message, type, is_read, scheduled_date, sent_date, created_at, updated_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY is_read ASC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Notification{}
	for rows.Next() {
		var n Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead,
			&n.ScheduledDate, &n.SentDate, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &n)
	}

	return items, rows.Err()
}

// UnreadCount returns how many unread notifications a user has
func (p *Postgres) UnreadCount(userID string) (int, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var count int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false
	`, userID).Scan(&count)
	return count, err
}

// MarkRead marks a notification as read and stamps the sent date
func (p *Postgres) MarkRead(id string) error {
	ctx := context.Background()
	pool := connections.Postgres()

	tag, err := pool.Exec(ctx, `
		UPDATE notifications SET is_read = true, sent_date = now(), updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// SeedMonthlyReminders creates a payment_due notification for every
// account with a member record and returns how many were created
func (p *Postgres) SeedMonthlyReminders(title, message string) (int, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	rows, err := pool.Query(ctx, `
		SELECT u.id FROM users u JOIN members m ON u.id = m.user_id
	`)
	if err != nil {
		return 0, err
	}

	userIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		userIDs = append(userIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, userID := range userIDs {
		_, err := pool.Exec(ctx, `
			INSERT INTO notifications (id, user_id, title, message, type, is_read, scheduled_date)
			VALUES ($1, $2, $3, $4, 'payment_due', false, now())
		`, uuid.NewString(), userID, title, message)
		if err != nil {
			return 0, err
		}
	}

	return len(userIDs), nil
}
