package activitylog

import "time"

// Entry is one audit row: who did what, from where, when
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository is the persistence contract for the audit log
type Repository interface {
	Record(id, userID, action, ipAddress string) error
}
