package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"vypay/internal/checkout"
)

func newFakeProxy(t *testing.T, statusCalls *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/create-transaction", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Method  string `json:"method"`
			Amount  int64  `json:"amount"`
			OrderID string `json:"order_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"payment": map[string]any{
				"order_id":       body.OrderID,
				"amount":         body.Amount,
				"fee":            1000,
				"total_payment":  body.Amount + 1000,
				"payment_method": body.Method,
				"payment_number": "00020101021226",
			},
		})
	})
	mux.HandleFunc("/api/transaction-status", func(w http.ResponseWriter, r *http.Request) {
		status := "pending"
		if atomic.AddInt32(statusCalls, 1) >= 2 {
			status = "completed"
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"transaction": map[string]any{"status": status}})
	})
	mux.HandleFunc("/api/simulate-payment", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "VY-7", body["order_id"])
		require.Equal(t, float64(25000), body["amount"])
		require.Equal(t, "pinaa", body["project"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"payment simulated","order_id":"VY-7"}`))
	})
	mux.HandleFunc("/api/methods", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"methods":[{"id":"qris","name":"QRIS","icon":"qrcode","category":"qris"}]}}`))
	})
	mux.HandleFunc("/api/fee-estimate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"method":"qris","amount":10000,"fee":1000,"total":11000}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPayCommand(t *testing.T) {
	var statusCalls int32
	srv := newFakeProxy(t, &statusCalls)

	out, err := runCommand(t, "pay", "--proxy", srv.URL, "--method", "qris", "--amount", "50000", "--poll", "10ms", "--wait", "5s")

	require.NoError(t, err)
	require.Contains(t, out, "QRIS Payment")
	require.Contains(t, out, "Rp 51.000")
	require.Contains(t, out, "00020101021226")
	require.Contains(t, out, "Payment completed")
	require.GreaterOrEqual(t, atomic.LoadInt32(&statusCalls), int32(2))
}

func TestPayCommandRejectsBadInput(t *testing.T) {
	var statusCalls int32
	srv := newFakeProxy(t, &statusCalls)

	out, err := runCommand(t, "pay", "--proxy", srv.URL, "--method", "qris", "--amount", "500")
	require.ErrorIs(t, err, checkout.ErrAmountBelowMinimum)
	require.Contains(t, out, "! amount below minimum")

	_, err = runCommand(t, "pay", "--proxy", srv.URL, "--method", "bitcoin", "--amount", "50000")
	var verr *checkout.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "method", verr.Field)
}

func TestMethodsCommand(t *testing.T) {
	var statusCalls int32
	srv := newFakeProxy(t, &statusCalls)

	out, err := runCommand(t, "methods", "--proxy", srv.URL)
	require.NoError(t, err)
	require.Contains(t, out, "qris")
	require.Contains(t, out, "QRIS")

	out, err = runCommand(t, "methods", "--proxy", srv.URL, "--amount", "10000")
	require.NoError(t, err)
	require.Contains(t, out, "Rp 11.000")
}

func TestStatusCommand(t *testing.T) {
	var statusCalls int32
	srv := newFakeProxy(t, &statusCalls)

	out, err := runCommand(t, "status", "--proxy", srv.URL, "--order-id", "VY-1", "--amount", "50000")
	require.NoError(t, err)
	require.Contains(t, out, "Status: pending")
	require.Contains(t, out, "Rp 50.000")
}

func TestSimulateCommand(t *testing.T) {
	var statusCalls int32
	srv := newFakeProxy(t, &statusCalls)

	out, err := runCommand(t, "simulate", "--proxy", srv.URL, "--project", "pinaa", "--api-key", "k", "--order-id", "VY-7", "--amount", "25000")
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"message":"payment simulated","order_id":"VY-7"}`, out)
	require.Contains(t, out, "\n  \"message\"")
}

func TestSimulateCommandRequiresOrderID(t *testing.T) {
	_, err := runCommand(t, "simulate", "--proxy", "http://127.0.0.1:1", "--amount", "25000")
	require.Error(t, err)
	require.Contains(t, err.Error(), "order-id")
}

func TestTerminalPresenterError(t *testing.T) {
	var out bytes.Buffer
	p := newTerminalPresenter(&out)

	p.Error(checkout.ErrInvalidAmount)
	p.Error(&checkout.GatewayError{Status: 401, Message: "invalid api key"})
	p.Error(&checkout.TimeoutError{})

	require.Contains(t, out.String(), "! amount must be a whole number")
	require.Contains(t, out.String(), "Payment error: invalid api key")
	require.Contains(t, out.String(), "timed out")
}

func TestTerminalPresenterCompletedOnce(t *testing.T) {
	p := newTerminalPresenter(&bytes.Buffer{})

	p.Completed(checkout.Transaction{OrderID: "VY-1"})
	p.Completed(checkout.Transaction{OrderID: "VY-1"})

	select {
	case <-p.Done():
	default:
		t.Fatal("done channel not closed")
	}
}
