package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() InvoiceSnapshot {
	return InvoiceSnapshot{
		BookingPublicID: "22222222-2222-2222-2222-222222222222",
		ProductName:     "Garden Venue",
		ProviderName:    "Tamasha Events",
		ProviderEmail:   "provider@example.com",
		RequesterName:   "Harusi Planners",
		RequesterEmail:  "requester@example.com",
		BookingType:     "MULTI_DAY",
		StartDate:       "2025-06-10",
		EndDate:         "2025-06-12",
		TotalDays:       3,
		TotalAmount:     10000,
		CouponCode:      "KARIBU10",
		DiscountAmount:  1000,
		FinalAmount:     9000,
		AdvancePaid:     3000,
		RemainingPaid:   6000,
		Currency:        "KES",
	}
}

func TestBuildInvoicePDF(t *testing.T) {
	pdf, err := BuildInvoicePDF(sampleSnapshot())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestBuildInvoicePDF_Deterministic(t *testing.T) {
	first, err := BuildInvoicePDF(sampleSnapshot())
	require.NoError(t, err)

	second, err := BuildInvoicePDF(sampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
