package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/models/bill"
	"github.com/GymDesk/gymdesk/models/payment"
)

// CreateBillRequest carries a new bill. Tax is a percentage of amount.
type CreateBillRequest struct {
	MemberID  string  `json:"member_id"`
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Tax       float64 `json:"tax"`
}

// CreateBill generates a bill for an existing payment
func CreateBill(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	exists, err := memberRepo.Exists(req.MemberID)
	if err != nil {
		log.WithError(err).Error("Create bill error")
		writeMessage(w, http.StatusInternalServerError, "Failed to create bill")
		return
	}
	if !exists {
		writeMessage(w, http.StatusNotFound, "Member not found")
		return
	}

	if _, err := paymentRepo.FindByID(req.PaymentID); err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			writeMessage(w, http.StatusNotFound, "Payment not found")
			return
		}
		log.WithError(err).Error("Create bill error")
		writeMessage(w, http.StatusInternalServerError, "Failed to create bill")
		return
	}

	tax, total := bill.CalculateTotal(req.Amount, req.Tax)
	b := &bill.Bill{
		ID:         uuid.NewString(),
		MemberID:   req.MemberID,
		PaymentID:  req.PaymentID,
		BillNumber: bill.GenerateBillNumber(),
		Amount:     req.Amount,
		Tax:        tax,
		Total:      total,
		Status:     "generated",
	}

	if err := billRepo.Create(b); err != nil {
		log.WithError(err).Error("Create bill error")
		writeMessage(w, http.StatusInternalServerError, "Failed to create bill")
		return
	}

	log.WithFields(log.Fields{"billId": b.ID, "billNumber": b.BillNumber, "amount": total}).Info("Bill created")

	writeJSON(w, http.StatusCreated, struct {
		Message    string  `json:"message"`
		BillID     string  `json:"billId"`
		BillNumber string  `json:"billNumber"`
		Total      float64 `json:"total"`
	}{"Bill created successfully", b.ID, b.BillNumber, total})
}

// ListBills returns a paginated page of bills with member user fields
func ListBills(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit := pageParams(r)

	bills, total, err := billRepo.List(page, limit)
	if err != nil {
		log.WithError(err).Error("Get all bills error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve bills")
		return
	}

	writeList(w, "Bills retrieved successfully", bills, page, limit, total)
}

// GetBill returns a single bill with member contact fields
func GetBill(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := billRepo.FindByID(ps.ByName("id"))
	if err != nil {
		if errors.Is(err, bill.ErrBillNotFound) {
			writeMessage(w, http.StatusNotFound, "Bill not found")
			return
		}
		log.WithError(err).Error("Get bill by ID error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve bill")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string     `json:"message"`
		Data    *bill.Bill `json:"data"`
	}{"Bill retrieved successfully", b})
}

// GetBillReceipt renders a minimal printable HTML receipt
func GetBillReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := billRepo.FindByID(ps.ByName("id"))
	if err != nil {
		if errors.Is(err, bill.ErrBillNotFound) {
			writeMessage(w, http.StatusNotFound, "Bill not found")
			return
		}
		log.WithError(err).Error("Get bill receipt error")
		writeMessage(w, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html><html><head><title>Receipt %s</title></head><body>
      <h1>Receipt</h1>
      <p><strong>Bill #:</strong> %s</p>
      <p><strong>Date:</strong> %s</p>
      <p><strong>Member:</strong> %s (%s)</p>
      <p><strong>Amount:</strong> %g</p>
      <p><strong>Tax:</strong> %g</p>
      <p><strong>Total:</strong> %g</p>
    </body></html>`,
		b.BillNumber, b.BillNumber, b.BillDate.Format("2006-01-02 15:04:05"),
		b.Username, b.Email, b.Amount, b.Tax, b.Total)
}

// ListMemberBills returns a member's bills, paginated
func ListMemberBills(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	memberID := ps.ByName("id")
	page, limit := pageParams(r)

	exists, err := memberRepo.Exists(memberID)
	if err != nil {
		log.WithError(err).Error("Get bills by member error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve bills")
		return
	}
	if !exists {
		writeMessage(w, http.StatusNotFound, "Member not found")
		return
	}

	bills, total, err := billRepo.ListByMember(memberID, page, limit)
	if err != nil {
		log.WithError(err).Error("Get bills by member error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve bills")
		return
	}

	writeList(w, "Member bills retrieved successfully", bills, page, limit, total)
}

// UpdateBillStatusRequest carries the new lifecycle status
type UpdateBillStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBillStatus moves a bill through its lifecycle
func UpdateBillStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req UpdateBillStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !bill.ValidStatuses[req.Status] {
		writeMessage(w, http.StatusBadRequest, "Invalid bill status")
		return
	}

	id := ps.ByName("id")
	if err := billRepo.UpdateStatus(id, req.Status); err != nil {
		if errors.Is(err, bill.ErrBillNotFound) {
			writeMessage(w, http.StatusNotFound, "Bill not found")
			return
		}
		log.WithError(err).Error("Update bill status error")
		writeMessage(w, http.StatusInternalServerError, "Failed to update bill")
		return
	}

	log.WithFields(log.Fields{"billId": id, "status": req.Status}).Info("Bill status updated")
	writeMessage(w, http.StatusOK, "Bill status updated successfully")
}

// DeleteBill removes a bill
func DeleteBill(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := billRepo.Delete(id); err != nil {
		if errors.Is(err, bill.ErrBillNotFound) {
			writeMessage(w, http.StatusNotFound, "Bill not found")
			return
		}
		log.WithError(err).Error("Delete bill error")
		writeMessage(w, http.StatusInternalServerError, "Failed to delete bill")
		return
	}

	log.WithFields(log.Fields{"billId": id}).Info("Bill deleted")
	writeMessage(w, http.StatusOK, "Bill deleted successfully")
}
