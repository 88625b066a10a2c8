package api

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/GymDesk/gymdesk/auth"
	"github.com/GymDesk/gymdesk/models/account"
	"github.com/GymDesk/gymdesk/models/bill"
	"github.com/GymDesk/gymdesk/models/diet"
	"github.com/GymDesk/gymdesk/models/feepackage"
	"github.com/GymDesk/gymdesk/models/member"
	"github.com/GymDesk/gymdesk/models/notification"
	"github.com/GymDesk/gymdesk/models/payment"
	"github.com/GymDesk/gymdesk/models/subscription"
	"github.com/GymDesk/gymdesk/models/supplement"
)

// Repositories are package-level so tests can swap in mocks, the same
// way the model packages are exercised in isolation.
var (
	accountRepo      account.Repository      = &account.Postgres{}
	memberRepo       member.Repository       = &member.Postgres{}
	feePackageRepo   feepackage.Repository   = &feepackage.Postgres{}
	subscriptionRepo subscription.Repository = &subscription.Postgres{}
	paymentRepo      payment.Repository      = &payment.Postgres{}
	billRepo         bill.Repository         = &bill.Postgres{}
	notificationRepo notification.Repository = &notification.Postgres{}
	supplementRepo   supplement.Repository   = &supplement.Postgres{}
	dietRepo         diet.Repository         = &diet.Postgres{}
)

var (
	tokens *auth.TokenService

	// Bootstrap identity for the admin auto-provisioning path.
	bootstrapEmail    string
	bootstrapPassword string
)

// Configure wires the controllers with the process configuration.
// Called once from main before the router starts serving.
func Configure(ts *auth.TokenService, adminEmail, adminPassword string) {
	tokens = ts
	bootstrapEmail = adminEmail
	bootstrapPassword = adminPassword
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination describes a page of a larger result set
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListResponse is the common list envelope: message, data, pagination
type ListResponse struct {
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

func writeList(w http.ResponseWriter, message string, data interface{}, page, limit, total int) {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	writeJSON(w, http.StatusOK, ListResponse{
		Message: message,
		Data:    data,
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// pageParams reads ?page= and ?limit= with the original defaults
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// isValidEmail validates email format
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

var phoneStrip = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// isValidPhone validates a 10-digit phone number, ignoring separators
func isValidPhone(phone string) bool {
	return phonePattern.MatchString(phoneStrip.Replace(phone))
}
