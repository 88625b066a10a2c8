package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/models/subscription"
)

// AssignSubscriptionRequest links a member to a fee package
type AssignSubscriptionRequest struct {
	MemberID     string     `json:"member_id"`
	FeePackageID string     `json:"fee_package_id"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

// AssignSubscription creates an active subscription for a member
func AssignSubscription(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req AssignSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.MemberID) == "" {
		writeMessage(w, http.StatusBadRequest, "member_id is required")
		return
	}
	if strings.TrimSpace(req.FeePackageID) == "" {
		writeMessage(w, http.StatusBadRequest, "fee_package_id is required")
		return
	}

	id := uuid.NewString()
	err := subscriptionRepo.Assign(id, strings.TrimSpace(req.MemberID), strings.TrimSpace(req.FeePackageID), req.StartDate, req.EndDate)
	if err != nil {
		log.WithError(err).Error("Assign subscription error")
		writeMessage(w, http.StatusInternalServerError, "Failed to assign subscription")
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}{"Subscription assigned", id})
}

// ListMemberSubscriptions returns a member's subscriptions with the
// joined package name and fee
func ListMemberSubscriptions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	subs, err := subscriptionRepo.ListByMember(ps.ByName("id"))
	if err != nil {
		log.WithError(err).Error("List subscriptions error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string                       `json:"message"`
		Data    []*subscription.Subscription `json:"data"`
	}{"Subscriptions retrieved", subs})
}
