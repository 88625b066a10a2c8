package jobs

import (
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/models/notification"
)

// FeeReminder seeds a payment_due notification for every member
// account. Scheduled monthly; the admin endpoint can fire it manually.
type FeeReminder struct {
	notifications notification.Repository
}

// NewFeeReminder creates a new FeeReminder
func NewFeeReminder() *FeeReminder {
	return &FeeReminder{
		notifications: &notification.Postgres{},
	}
}

// Run executes the reminder job
func (fr FeeReminder) Run() {
	log.Info("Fee Reminder Started")

	count, err := fr.notifications.SeedMonthlyReminders(
		"Monthly Fee Reminder",
		"Your monthly fee is due soon. Please make payment.",
	)
	if err != nil {
		log.WithError(err).Error("Fee Reminder: Seed Failed")
		return
	}

	log.WithField("count", count).Info("Fee Reminder Completed")
}
