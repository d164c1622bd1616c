package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPaymentSignature(t *testing.T) {
	const secret = "test-gateway-secret"

	t.Run("RecomputedSignatureMatches", func(t *testing.T) {
		sig := PaymentSignature("order_abc123", "pay_xyz789", secret)
		assert.True(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", sig, secret))
	})

	t.Run("TamperedSignatureRejected", func(t *testing.T) {
		sig := PaymentSignature("order_abc123", "pay_xyz789", secret)
		tampered := []byte(sig)
		if tampered[0] == 'a' {
			tampered[0] = 'b'
		} else {
			tampered[0] = 'a'
		}
		assert.False(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", string(tampered), secret))
	})

	t.Run("DifferentOrderRejected", func(t *testing.T) {
		sig := PaymentSignature("order_abc123", "pay_xyz789", secret)
		assert.False(t, VerifyPaymentSignature("order_other", "pay_xyz789", sig, secret))
	})

	t.Run("DifferentSecretRejected", func(t *testing.T) {
		sig := PaymentSignature("order_abc123", "pay_xyz789", secret)
		assert.False(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", sig, "wrong-secret"))
	})
}
