package notification

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// ValidTypes is the closed set of notification categories
var ValidTypes = map[string]bool{
	"payment_due":         true,
	"payment_received":    true,
	"membership_expiring": true,
	"gym_update":          true,
	"general":             true,
}

// Notification represents a dashboard notification for a user
type Notification struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Type          string     `json:"type"`
	IsRead        bool       `json:"is_read"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	SentDate      *time.Time `json:"sent_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Repository is the persistence contract for notifications
type Repository interface {
	Create(n *Notification) error
	ListByUser(userID string) ([]*Notification, error)
	UnreadCount(userID string) (int, error)
	MarkRead(id string) error
	SeedMonthlyReminders(title, message string) (int, error)
}
