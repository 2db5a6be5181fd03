// Package proxyclient talks to the VyPay transaction proxy over HTTP.
package proxyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vypay/internal/payments"
)

// StatusError is a non-2xx answer from the proxy. The proxy relays upstream failures
// with the upstream status, so Status is usually the provider's.
type StatusError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("proxy http=%d: %s", e.Status, e.Message)
}

func (e *StatusError) HTTPStatus() int         { return e.Status }
func (e *StatusError) UpstreamMessage() string { return e.Message }

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type createBody struct {
	Method  string `json:"method"`
	Amount  int64  `json:"amount"`
	OrderID string `json:"order_id"`
	Project string `json:"project,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
}

type simulateBody struct {
	Project string `json:"project,omitempty"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	APIKey  string `json:"api_key,omitempty"`
}

func (c *Client) CreateTransaction(ctx context.Context, req payments.CreateRequest) (payments.PaymentDetail, error) {
	raw, err := c.postJSON(ctx, "/api/create-transaction", createBody{
		Method:  req.Method,
		Amount:  req.Amount,
		OrderID: req.OrderID,
		Project: req.Project,
		APIKey:  req.APIKey,
	})
	if err != nil {
		return payments.PaymentDetail{}, err
	}
	return payments.DecodePaymentDetail(raw)
}

func (c *Client) CheckStatus(ctx context.Context, req payments.DetailRequest) (payments.TransactionStatus, error) {
	q := url.Values{}
	q.Set("order_id", req.OrderID)
	q.Set("amount", strconv.FormatInt(req.Amount, 10))
	if req.Project != "" {
		q.Set("project", req.Project)
	}
	if req.APIKey != "" {
		q.Set("api_key", req.APIKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/transaction-status?"+q.Encode(), nil)
	if err != nil {
		return payments.TransactionStatus{}, fmt.Errorf("transaction status request: %w", err)
	}

	raw, err := c.do(httpReq)
	if err != nil {
		return payments.TransactionStatus{}, err
	}
	return payments.DecodeTransactionStatus(raw)
}

func (c *Client) SimulatePayment(ctx context.Context, req payments.SimulateRequest) (json.RawMessage, error) {
	return c.postJSON(ctx, "/api/simulate-payment", simulateBody{
		Project: req.Project,
		OrderID: req.OrderID,
		Amount:  req.Amount,
		APIKey:  req.APIKey,
	})
}

// Methods fetches the proxy's method catalog.
func (c *Client) Methods(ctx context.Context) ([]payments.Method, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/methods", nil)
	if err != nil {
		return nil, fmt.Errorf("methods request: %w", err)
	}

	raw, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data struct {
			Methods []payments.Method `json:"methods"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", payments.ErrMalformedResponse, err)
	}
	return envelope.Data.Methods, nil
}

func (c *Client) FeeEstimate(ctx context.Context, method string, amount int64) (payments.FeeEstimate, error) {
	q := url.Values{}
	q.Set("method", method)
	q.Set("amount", strconv.FormatInt(amount, 10))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/fee-estimate?"+q.Encode(), nil)
	if err != nil {
		return payments.FeeEstimate{}, fmt.Errorf("fee estimate request: %w", err)
	}

	raw, err := c.do(httpReq)
	if err != nil {
		return payments.FeeEstimate{}, err
	}

	var envelope struct {
		Data payments.FeeEstimate `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return payments.FeeEstimate{}, fmt.Errorf("%w: %v", payments.ErrMalformedResponse, err)
	}
	return envelope.Data, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq)
}

func (c *Client) do(httpReq *http.Request) (json.RawMessage, error) {
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("proxy %s: %w", httpReq.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("proxy %s read body: %w", httpReq.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := payments.ExtractMessage(raw)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &StatusError{Status: resp.StatusCode, Message: msg, Body: raw}
	}
	return raw, nil
}
