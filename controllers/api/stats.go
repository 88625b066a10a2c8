package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/models/member"
	"github.com/GymDesk/gymdesk/models/payment"
)

// GetMemberStats returns member base totals for the admin dashboard
func GetMemberStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := memberRepo.GetStats()
	if err != nil {
		log.WithError(err).Error("Get member stats error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve member stats")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string        `json:"message"`
		Data    *member.Stats `json:"data"`
	}{"Member stats retrieved", stats})
}

// GetPaymentStats returns payment totals for the admin dashboard
func GetPaymentStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := paymentRepo.GetStats()
	if err != nil {
		log.WithError(err).Error("Get payment stats error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve payment stats")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string         `json:"message"`
		Data    *payment.Stats `json:"data"`
	}{"Payment stats retrieved", stats})
}
