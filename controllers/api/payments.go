package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/models/payment"
)

// CreatePaymentRequest carries a received payment
type CreatePaymentRequest struct {
	MemberID       string  `json:"member_id"`
	SubscriptionID *string `json:"subscription_id"`
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	TransactionID  *string `json:"transaction_id"`
	Notes          string  `json:"notes"`
}

// CreatePayment records a payment for a member
func CreatePayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !payment.ValidMethods[req.PaymentMethod] {
		writeMessage(w, http.StatusBadRequest, "Invalid payment method")
		return
	}

	exists, err := memberRepo.Exists(req.MemberID)
	if err != nil {
		log.WithError(err).Error("Create payment error")
		writeMessage(w, http.StatusInternalServerError, "Failed to create payment")
		return
	}
	if !exists {
		writeMessage(w, http.StatusNotFound, "Member not found")
		return
	}

	p := &payment.Payment{
		ID:             uuid.NewString(),
		MemberID:       req.MemberID,
		SubscriptionID: req.SubscriptionID,
		Amount:         req.Amount,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  req.TransactionID,
		Notes:          req.Notes,
	}

	if err := paymentRepo.Create(p); err != nil {
		log.WithError(err).Error("Create payment error")
		writeMessage(w, http.StatusInternalServerError, "Failed to create payment")
		return
	}

	log.WithFields(log.Fields{"paymentId": p.ID, "memberId": p.MemberID, "amount": p.Amount}).Info("Payment created")

	writeJSON(w, http.StatusCreated, struct {
		Message   string `json:"message"`
		PaymentID string `json:"paymentId"`
	}{"Payment created successfully", p.ID})
}

// ListPayments returns a paginated page of payments with user fields
func ListPayments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit := pageParams(r)

	payments, total, err := paymentRepo.List(page, limit)
	if err != nil {
		log.WithError(err).Error("Get all payments error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	writeList(w, "Payments retrieved successfully", payments, page, limit, total)
}

// ListMemberPayments returns a member's payments, paginated
func ListMemberPayments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	memberID := ps.ByName("id")
	page, limit := pageParams(r)

	exists, err := memberRepo.Exists(memberID)
	if err != nil {
		log.WithError(err).Error("Get payments by member error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}
	if !exists {
		writeMessage(w, http.StatusNotFound, "Member not found")
		return
	}

	payments, total, err := paymentRepo.ListByMember(memberID, page, limit)
	if err != nil {
		log.WithError(err).Error("Get payments by member error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	writeList(w, "Member payments retrieved successfully", payments, page, limit, total)
}

// GetPayment returns a single payment with user fields
func GetPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	p, err := paymentRepo.FindByID(ps.ByName("id"))
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			writeMessage(w, http.StatusNotFound, "Payment not found")
			return
		}
		log.WithError(err).Error("Get payment by ID error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve payment")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string           `json:"message"`
		Data    *payment.Payment `json:"data"`
	}{"Payment retrieved successfully", p})
}
