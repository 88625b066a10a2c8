package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/models/account"
	"github.com/GymDesk/gymdesk/models/notification"
)

// CreateNotificationRequest carries a new dashboard notification
type CreateNotificationRequest struct {
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Type          string     `json:"type"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

func (req *CreateNotificationRequest) validate() string {
	if strings.TrimSpace(req.UserID) == "" {
		return "user_id is required"
	}
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(req.Message) == "" {
		return "message is required"
	}
	if req.Type != "" && !notification.ValidTypes[req.Type] {
		return "type is invalid"
	}
	return ""
}

// CreateNotification creates a notification for a user
func CreateNotification(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	if _, err := accountRepo.FindByID(req.UserID); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeMessage(w, http.StatusBadRequest, "User not found")
			return
		}
		log.WithError(err).Error("Create notification error")
		writeMessage(w, http.StatusInternalServerError, "Failed to create notification")
		return
	}

	typ := req.Type
	if typ == "" {
		typ = "general"
	}

	n := &notification.Notification{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		Title:         req.Title,
		Message:       req.Message,
		Type:          typ,
		ScheduledDate: req.ScheduledDate,
	}

	if err := notificationRepo.Create(n); err != nil {
		log.WithError(err).Error("Create notification error")
		writeMessage(w, http.StatusInternalServerError, "Failed to create notification")
		return
	}

	log.WithFields(log.Fields{"id": n.ID, "userId": n.UserID, "type": n.Type}).Info("Notification created")

	writeJSON(w, http.StatusCreated, struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}{"Notification created", n.ID})
}

// ListUserNotifications returns a user's notifications, unread first
func ListUserNotifications(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userId")

	if _, err := accountRepo.FindByID(userID); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeJSON(w, http.StatusNotFound, struct {
				Message string                       `json:"message"`
				Data    []*notification.Notification `json:"data"`
			}{"User not found", []*notification.Notification{}})
			return
		}
		log.WithError(err).Error("List notifications error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	items, err := notificationRepo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("List notifications error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	log.WithFields(log.Fields{"userId": userID, "count": len(items)}).Info("Notifications retrieved")

	writeJSON(w, http.StatusOK, struct {
		Message string                       `json:"message"`
		Data    []*notification.Notification `json:"data"`
	}{"Notifications retrieved", items})
}

// GetUnreadCount returns the number of unread notifications for a user
func GetUnreadCount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	count, err := notificationRepo.UnreadCount(ps.ByName("userId"))
	if err != nil {
		log.WithError(err).Error("Unread notifications count error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve unread count")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}{"Unread count retrieved", count})
}

// MarkNotificationRead marks a notification read and stamps sent_date
func MarkNotificationRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := notificationRepo.MarkRead(ps.ByName("id")); err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			writeMessage(w, http.StatusNotFound, "Notification not found")
			return
		}
		log.WithError(err).Error("Mark notification read error")
		writeMessage(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	writeMessage(w, http.StatusOK, "Notification marked read")
}

// SeedMonthlyReminders inserts a payment_due reminder for every member
// account. Also run by the monthly cron job.
func SeedMonthlyReminders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := notificationRepo.SeedMonthlyReminders(
		"Monthly Fee Reminder",
		"Your monthly fee is due soon. Please make payment.",
	)
	if err != nil {
		log.WithError(err).Error("Seed monthly notifications error")
		writeMessage(w, http.StatusInternalServerError, "Failed to seed notifications")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}{"Monthly reminders seeded", count})
}
