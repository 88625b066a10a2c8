package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GymDesk/gymdesk/models/bill"
	"github.com/GymDesk/gymdesk/models/member"
	"github.com/GymDesk/gymdesk/models/payment"
)

func setupBills(t *testing.T) (*fakeMembers, *fakePayments, *fakeBills) {
	t.Helper()

	members := newFakeMembers()
	payments := &fakePayments{}
	bills := &fakeBills{}
	memberRepo = members
	paymentRepo = payments
	billRepo = bills
	t.Cleanup(func() {
		memberRepo = &member.Postgres{}
		paymentRepo = &payment.Postgres{}
		billRepo = &bill.Postgres{}
	})

	return members, payments, bills
}

func TestCreateBill(t *testing.T) {
	members, payments, bills := setupBills(t)
	members.Create("m1", "u1")
	payments.Create(&payment.Payment{ID: "p1", MemberID: "m1", Amount: 100, PaymentMethod: "cash"})

	t.Run("unknown member", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPost, "/api/bills", CreateBillRequest{
			MemberID: "ghost", PaymentID: "p1", Amount: 100,
		})
		CreateBill(w, r, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Member not found", decodeBody(t, w)["message"])
	})

	t.Run("unknown payment", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPost, "/api/bills", CreateBillRequest{
			MemberID: "m1", PaymentID: "ghost", Amount: 100,
		})
		CreateBill(w, r, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Payment not found", decodeBody(t, w)["message"])
	})

	t.Run("ok with tax", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPost, "/api/bills", CreateBillRequest{
			MemberID: "m1", PaymentID: "p1", Amount: 100, Tax: 18,
		})
		CreateBill(w, r, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Bill created successfully", body["message"])
		assert.Equal(t, float64(118), body["total"])
		assert.Contains(t, body["billNumber"], "BILL-")

		require.Len(t, bills.bills, 1)
		assert.Equal(t, "generated", bills.bills[0].Status)
		assert.Equal(t, float64(18), bills.bills[0].Tax)
	})
}

func TestUpdateBillStatus(t *testing.T) {
	_, _, bills := setupBills(t)
	bills.Create(&bill.Bill{ID: "b1", Status: "generated"})

	ps := httprouter.Params{{Key: "id", Value: "b1"}}

	t.Run("invalid status", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPatch, "/api/bills/b1/status", UpdateBillStatusRequest{Status: "shredded"})
		UpdateBillStatus(w, r, ps)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid bill status", decodeBody(t, w)["message"])
	})

	t.Run("unknown bill", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPatch, "/api/bills/ghost/status", UpdateBillStatusRequest{Status: "emailed"})
		UpdateBillStatus(w, r, httprouter.Params{{Key: "id", Value: "ghost"}})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ok", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPatch, "/api/bills/b1/status", UpdateBillStatusRequest{Status: "emailed"})
		UpdateBillStatus(w, r, ps)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "emailed", bills.bills[0].Status)
	})
}

func TestCreatePayment_InvalidMethod(t *testing.T) {
	members, _, _ := setupBills(t)
	members.Create("m1", "u1")

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/payments", CreatePaymentRequest{
		MemberID: "m1", Amount: 100, PaymentMethod: "barter",
	})
	CreatePayment(w, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid payment method", decodeBody(t, w)["message"])
}

func TestCreatePayment_OK(t *testing.T) {
	members, payments, _ := setupBills(t)
	members.Create("m1", "u1")

	w := httptest.NewRecorder()
	r := jsonRequest(http.MethodPost, "/api/payments", CreatePaymentRequest{
		MemberID: "m1", Amount: 100, PaymentMethod: "upi",
	})
	CreatePayment(w, r, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Payment created successfully", body["message"])
	assert.NotEmpty(t, body["paymentId"])

	require.Len(t, payments.payments, 1)
	assert.Equal(t, "completed", payments.payments[0].Status)
}
