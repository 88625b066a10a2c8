package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GymDesk/gymdesk/models/bill"
	"github.com/GymDesk/gymdesk/models/member"
	"github.com/GymDesk/gymdesk/models/payment"
)

func TestExportBillsReport(t *testing.T) {
	members := newFakeMembers()
	members.Create("m1", "u1")

	bills := &fakeBills{bills: []*bill.Bill{{
		ID: "b1", MemberID: "m1", PaymentID: "p1",
		BillNumber: "BILL-1700000000000-0042",
		BillDate:   time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		Amount:     100, Tax: 18, Total: 118, Status: "generated",
		FirstName: "Jane", LastName: "Doe",
		Email: "jane@example.com", Phone: "9876543210",
		MembershipStatus: "active",
		CreatedAt:        time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}}}

	payments := &fakePayments{payments: []*payment.Payment{{
		ID: "p1", MemberID: "m1", Amount: 118, PaymentMethod: "card", Status: "completed",
	}}}

	memberRepo = members
	billRepo = bills
	paymentRepo = payments
	t.Cleanup(func() {
		memberRepo = &member.Postgres{}
		billRepo = &bill.Postgres{}
		paymentRepo = &payment.Postgres{}
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/reports/bills", nil)
	ExportBillsReport(w, r, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "gym_report_")

	body := w.Body.String()
	assert.Contains(t, body, "SUMMARY STATISTICS")
	assert.Contains(t, body, "Total Active Members,1")
	assert.Contains(t, body, "Total Bills Generated,1")
	assert.Contains(t, body, "Completed Payments,1")
	assert.Contains(t, body, "Total Payments Amount,$118.00")
	assert.Contains(t, body, "Total Revenue,$118.00")
	assert.Contains(t, body, "BILLS DETAILS")
	assert.Contains(t, body, `"BILL-1700000000000-0042","3/15/2026","Jane Doe","jane@example.com","9876543210","active",$100.00,$18.00,$118.00,"generated","3/15/2026"`)
}

func TestCsvField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", `"hello"`},
		{"empty becomes NA", "", `"N/A"`},
		{"quotes escaped", `say "hi"`, `"say ""hi"""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := csvField(tt.in); got != tt.want {
				t.Errorf("csvField() = %v, want %v", got, tt.want)
			}
		})
	}
}
