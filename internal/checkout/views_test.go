package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vypay/internal/checkout"
	"vypay/internal/payments"
)

func TestViewFor_EveryCategoryHasHints(t *testing.T) {
	for _, m := range payments.DefaultMethods {
		hints, ok := checkout.ViewFor(m.Category)
		require.True(t, ok, m.ID)
		require.NotEmpty(t, hints.Title)
		require.NotEmpty(t, hints.Instructions)
	}

	_, ok := checkout.ViewFor("cash")
	require.False(t, ok)
}

func TestView_Reference(t *testing.T) {
	qr, _ := checkout.ViewFor(payments.CategoryQRIS)
	va, _ := checkout.ViewFor(payments.CategoryVirtualAccount)
	paypal, _ := checkout.ViewFor(payments.CategoryPayPal)

	tx := checkout.Transaction{Detail: payments.PaymentDetail{PaymentNumber: "8808123456"}}

	require.Equal(t, "8808123456", checkout.View{Hints: va, Transaction: tx}.Reference())
	require.Equal(t, "-", checkout.View{Hints: qr}.Reference())
	require.Equal(t, "PayPal Express Checkout", checkout.View{Hints: paypal, Transaction: tx}.Reference())
}
