package payments_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vypay/internal/payments"
)

func TestDecodePaymentDetail_RejectsMalformedBodies(t *testing.T) {
	cases := map[string]string{
		"not json":         `<html>`,
		"missing payment":  `{"status":"ok"}`,
		"missing order id": `{"payment":{"amount":1000}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := payments.DecodePaymentDetail([]byte(body))
			require.True(t, errors.Is(err, payments.ErrMalformedResponse))
		})
	}
}

func TestDecodeTransactionStatus(t *testing.T) {
	status, err := payments.DecodeTransactionStatus([]byte(`{"transaction":{"order_id":"VY-123","status":"pending"}}`))
	require.NoError(t, err)
	require.False(t, status.Completed())

	_, err = payments.DecodeTransactionStatus([]byte(`{}`))
	require.ErrorIs(t, err, payments.ErrMalformedResponse)
}

func TestDecodeTransactionStatus_LenientCompletedAt(t *testing.T) {
	status, err := payments.DecodeTransactionStatus([]byte(`{"transaction":{"order_id":"VY-1","status":"completed","completed_at":"2024-09-10 08:07:02"}}`))
	require.NoError(t, err)
	require.True(t, status.Completed())
	require.Equal(t, time.Date(2024, 9, 10, 1, 7, 2, 0, time.UTC), status.CompletedAt.UTC())

	status, err = payments.DecodeTransactionStatus([]byte(`{"transaction":{"status":"completed","completed_at":"yesterday-ish"}}`))
	require.NoError(t, err)
	require.True(t, status.Completed())
	require.True(t, status.CompletedAt.IsZero())
	require.Equal(t, "yesterday-ish", status.CompletedAt.String())

	status, err = payments.DecodeTransactionStatus([]byte(`{"transaction":{"status":"pending","completed_at":null}}`))
	require.NoError(t, err)
	require.Equal(t, "", status.CompletedAt.String())
}

func TestDecodePaymentDetail_LenientExpiredAt(t *testing.T) {
	cases := map[string]struct {
		body string
		want time.Time
	}{
		"empty":    {`{"payment":{"order_id":"VY-1","expired_at":""}}`, time.Time{}},
		"rfc3339":  {`{"payment":{"order_id":"VY-1","expired_at":"2025-09-10T08:07:02.819+07:00"}}`, time.Date(2025, 9, 10, 1, 7, 2, 819000000, time.UTC)},
		"zoneless": {`{"payment":{"order_id":"VY-1","expired_at":"2025-09-10T08:07:02"}}`, time.Date(2025, 9, 10, 1, 7, 2, 0, time.UTC)},
		"missing":  {`{"payment":{"order_id":"VY-1"}}`, time.Time{}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			detail, err := payments.DecodePaymentDetail([]byte(tc.body))
			require.NoError(t, err)
			if tc.want.IsZero() {
				require.True(t, detail.ExpiredAt.IsZero())
				return
			}
			require.True(t, tc.want.Equal(detail.ExpiredAt.Time))
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(payments.Timestamp{Raw: "soon"})
	require.NoError(t, err)
	require.JSONEq(t, `"soon"`, string(raw))

	raw, err = json.Marshal(payments.Timestamp{})
	require.NoError(t, err)
	require.JSONEq(t, `null`, string(raw))
}

func TestExtractMessage(t *testing.T) {
	require.Equal(t, "bad key", payments.ExtractMessage([]byte(`{"error":"bad key"}`)))
	require.Equal(t, "nested", payments.ExtractMessage([]byte(`{"error":{"message":"nested"}}`)))
	require.Equal(t, "quoted", payments.ExtractMessage([]byte(`"quoted"`)))
	require.Equal(t, "Bad Gateway", payments.ExtractMessage([]byte("Bad Gateway\n")))
}
