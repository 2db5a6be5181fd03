package payments_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vypay/internal/payments"
)

var creds = payments.Credentials{Project: "pinaa", APIKey: "secret"}

func TestPakasirAdapter_CreateTransaction_PostsToMethodPath(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payment":{"order_id":"VY-1","amount":1000,"fee":1000,"total_payment":2000,"payment_method":"qris","payment_number":"000201"}}`))
	}))
	defer srv.Close()

	adapter := payments.NewPakasirAdapter(srv.URL+"/", 5*time.Second)
	resp, err := adapter.CreateTransaction(context.Background(), payments.CreateRequest{
		Credentials: creds,
		Method:      "qris",
		OrderID:     "VY-1",
		Amount:      1000,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/api/transactioncreate/qris", gotPath)
	require.Equal(t, "pinaa", gotBody["project"])
	require.Equal(t, "VY-1", gotBody["order_id"])
	require.Equal(t, float64(1000), gotBody["amount"])
	require.Equal(t, "secret", gotBody["api_key"])

	detail, err := payments.DecodePaymentDetail(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "000201", detail.PaymentNumber)
	require.Equal(t, int64(2000), detail.Total())
}

func TestPakasirAdapter_TransactionDetail_SendsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/transactiondetail", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "pinaa", q.Get("project"))
		require.Equal(t, "5000", q.Get("amount"))
		require.Equal(t, "VY-2", q.Get("order_id"))
		require.Equal(t, "secret", q.Get("api_key"))
		_, _ = w.Write([]byte(`{"transaction":{"order_id":"VY-2","amount":5000,"status":"completed"}}`))
	}))
	defer srv.Close()

	adapter := payments.NewPakasirAdapter(srv.URL, 5*time.Second)
	resp, err := adapter.TransactionDetail(context.Background(), payments.DetailRequest{
		Credentials: creds,
		OrderID:     "VY-2",
		Amount:      5000,
	})
	require.NoError(t, err)

	status, err := payments.DecodeTransactionStatus(resp.Body)
	require.NoError(t, err)
	require.True(t, status.Completed())
}

func TestPakasirAdapter_SimulatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/paymentsimulation", r.URL.Path)
		_, _ = w.Write([]byte(`{"payment":{"order_id":"VY-3","amount":2000,"payment_method":"bni_va"}}`))
	}))
	defer srv.Close()

	adapter := payments.NewPakasirAdapter(srv.URL, 5*time.Second)
	_, err := adapter.SimulatePayment(context.Background(), payments.SimulateRequest{
		Credentials: creds,
		OrderID:     "VY-3",
		Amount:      2000,
	})
	require.NoError(t, err)
}

func TestPakasirAdapter_Non2xxReturnsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer srv.Close()

	adapter := payments.NewPakasirAdapter(srv.URL, 5*time.Second)
	_, err := adapter.CreateTransaction(context.Background(), payments.CreateRequest{Method: "qris", Amount: 1000})

	var upstream *payments.UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, http.StatusUnprocessableEntity, upstream.Status)
	require.Equal(t, "invalid api key", upstream.Message())
}

func TestPakasirAdapter_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	adapter := payments.NewPakasirAdapter(srv.URL, time.Second)
	_, err := adapter.TransactionDetail(context.Background(), payments.DetailRequest{OrderID: "x", Amount: 1000})
	require.Error(t, err)

	var upstream *payments.UpstreamError
	require.False(t, errors.As(err, &upstream))
}

func TestPakasirAdapter_PlainTextSuccessIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	adapter := payments.NewPakasirAdapter(srv.URL, time.Second)
	resp, err := adapter.SimulatePayment(context.Background(), payments.SimulateRequest{OrderID: "x", Amount: 1000})
	require.NoError(t, err)
	require.JSONEq(t, `"ok"`, string(resp.Body))
}
