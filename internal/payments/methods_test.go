package payments_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vypay/internal/payments"
)

func TestDefaultCatalog(t *testing.T) {
	c := payments.DefaultCatalog()

	require.Len(t, c.Methods(), 11)
	require.Equal(t, "qris", c.Default().ID)

	m, err := c.Lookup("bri_va")
	require.NoError(t, err)
	require.Equal(t, payments.CategoryVirtualAccount, m.Category)

	_, err = c.Lookup("gopay")
	require.ErrorIs(t, err, payments.ErrUnknownMethod)
}

func TestCatalog_DefaultFallsBackToFirstMethod(t *testing.T) {
	c, err := payments.NewCatalog([]payments.Method{
		{ID: "bni_va", Category: payments.CategoryVirtualAccount},
		{ID: "paypal", Category: payments.CategoryPayPal},
	})
	require.NoError(t, err)
	require.Equal(t, "bni_va", c.Default().ID)
}

func TestNewCatalog_RejectsBadInput(t *testing.T) {
	_, err := payments.NewCatalog(nil)
	require.Error(t, err)

	_, err = payments.NewCatalog([]payments.Method{{ID: "x", Category: "cash"}})
	require.Error(t, err)

	_, err = payments.NewCatalog([]payments.Method{
		{ID: "qris", Category: payments.CategoryQRIS},
		{ID: "qris", Category: payments.CategoryQRIS},
	})
	require.Error(t, err)
}

func TestCatalog_MethodsReturnsCopy(t *testing.T) {
	c := payments.DefaultCatalog()
	ms := c.Methods()
	ms[0].ID = "changed"
	require.Equal(t, "qris", c.Methods()[0].ID)
}
