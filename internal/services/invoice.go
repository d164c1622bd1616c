package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceSnapshot carries everything the invoice renders. It is built from
// the booking's stored pricing snapshot, never from live product state, so
// the same snapshot always produces the same invoice.
type InvoiceSnapshot struct {
	BookingPublicID string
	ProductName     string
	ProviderName    string
	ProviderEmail   string
	RequesterName   string
	RequesterEmail  string
	BookingType     string
	StartDate       string
	EndDate         string
	TotalDays       int
	TotalAmount     float64
	CouponCode      string
	DiscountAmount  float64
	FinalAmount     float64
	AdvancePaid     float64
	RemainingPaid   float64
	Currency        string
}

// BuildInvoicePDF renders the settlement invoice for a completed booking.
func BuildInvoicePDF(snap InvoiceSnapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Pin the metadata date so the same snapshot always yields the same bytes
	pdf.SetCreationDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	pdf.SetTitle(fmt.Sprintf("Invoice %s", snap.BookingPublicID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(230, 126, 34)
	pdf.CellFormat(0, 12, "Shereheni", "", 1, "C", false, 0, "")

	pdf.SetTextColor(44, 62, 80)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Booking Settlement Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice Ref: %s", snap.BookingPublicID), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	labelValue := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	labelValue("Service", snap.ProductName)
	labelValue("Vendor", fmt.Sprintf("%s <%s>", snap.ProviderName, snap.ProviderEmail))
	labelValue("Booked By", fmt.Sprintf("%s <%s>", snap.RequesterName, snap.RequesterEmail))
	labelValue("Booking Type", snap.BookingType)
	labelValue("Dates", fmt.Sprintf("%s to %s (%d day(s))", snap.StartDate, snap.EndDate, snap.TotalDays))
	pdf.Ln(6)

	amountRow := func(label string, amount float64) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(120, 8, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, fmt.Sprintf("%s %.2f", snap.Currency, amount), "1", 1, "R", false, 0, "")
	}

	amountRow("Total Amount", snap.TotalAmount)
	if snap.CouponCode != "" {
		amountRow(fmt.Sprintf("Discount (%s)", snap.CouponCode), -snap.DiscountAmount)
	}
	amountRow("Final Amount", snap.FinalAmount)
	amountRow("Advance Paid", snap.AdvancePaid)
	amountRow("Balance Paid", snap.RemainingPaid)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 8, "Total Paid", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("%s %.2f", snap.Currency, snap.AdvancePaid+snap.RemainingPaid), "1", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 6, "This booking is settled in full. Thank you for using Shereheni.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %v", err)
	}

	return buf.Bytes(), nil
}
