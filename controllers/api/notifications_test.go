package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GymDesk/gymdesk/models/notification"
)

func setupNotifications(t *testing.T) *fakeNotifications {
	t.Helper()

	notifications := &fakeNotifications{}
	notificationRepo = notifications
	t.Cleanup(func() {
		notificationRepo = &notification.Postgres{}
	})

	return notifications
}

func TestMarkNotificationRead(t *testing.T) {
	notifications := setupNotifications(t)
	notifications.Create(&notification.Notification{ID: "n1", UserID: "u1", Title: "Hi", Message: "Welcome", Type: "general"})

	t.Run("unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, "/api/notifications/ghost/read", nil)
		MarkNotificationRead(w, r, httprouter.Params{{Key: "id", Value: "ghost"}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Notification not found", decodeBody(t, w)["message"])
	})

	t.Run("ok", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, "/api/notifications/n1/read", nil)
		MarkNotificationRead(w, r, httprouter.Params{{Key: "id", Value: "n1"}})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Notification marked read", decodeBody(t, w)["message"])
		assert.True(t, notifications.notifications[0].IsRead)
	})
}
