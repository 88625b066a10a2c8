package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
)

func csvField(s string) string {
	if s == "" {
		s = "N/A"
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportBillsReport streams the comprehensive CSV report: a summary
// statistics section followed by one row per bill.
func ExportBillsReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bills, err := billRepo.ListAllDetailed()
	if err != nil {
		log.WithError(err).Error("Export bills report error")
		writeMessage(w, http.StatusInternalServerError, "Failed to export report")
		return
	}

	memberStats, err := memberRepo.GetStats()
	if err != nil {
		log.WithError(err).Error("Export bills report error")
		writeMessage(w, http.StatusInternalServerError, "Failed to export report")
		return
	}

	paymentStats, err := paymentRepo.GetStats()
	if err != nil {
		log.WithError(err).Error("Export bills report error")
		writeMessage(w, http.StatusInternalServerError, "Failed to export report")
		return
	}

	billStats, err := billRepo.GetStats()
	if err != nil {
		log.WithError(err).Error("Export bills report error")
		writeMessage(w, http.StatusInternalServerError, "Failed to export report")
		return
	}

	now := time.Now()
	var csv strings.Builder

	csv.WriteString("Gym Management System - Comprehensive Report\n")
	fmt.Fprintf(&csv, "Generated on: %s %s\n\n", now.Format("1/2/2006"), now.Format("3:04:05 PM"))

	csv.WriteString("SUMMARY STATISTICS\n")
	fmt.Fprintf(&csv, "Total Active Members,%d\n", memberStats.Active)
	fmt.Fprintf(&csv, "Total Bills Generated,%d\n", billStats.Total)
	fmt.Fprintf(&csv, "Completed Payments,%d\n", paymentStats.Total)
	fmt.Fprintf(&csv, "Total Payments Amount,$%.2f\n", paymentStats.TotalAmount)
	fmt.Fprintf(&csv, "Total Revenue,$%.2f\n\n", billStats.Revenue)

	csv.WriteString("BILLS DETAILS\n")
	csv.WriteString("Bill Number,Bill Date,Member Name,Email,Phone,Membership Status,Amount,Tax,Total,Status,Created At\n")

	for _, b := range bills {
		memberName := strings.TrimSpace(b.FirstName + " " + b.LastName)
		fmt.Fprintf(&csv, "%s,%s,%s,%s,%s,%s,$%.2f,$%.2f,$%.2f,%s,%s\n",
			csvField(b.BillNumber),
			csvField(b.BillDate.Format("1/2/2006")),
			csvField(memberName),
			csvField(b.Email),
			csvField(b.Phone),
			csvField(b.MembershipStatus),
			b.Amount, b.Tax, b.Total,
			csvField(b.Status),
			csvField(b.CreatedAt.Format("1/2/2006")))
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="gym_report_%d.csv"`, now.UnixMilli()))
	w.Write([]byte(csv.String()))
}
