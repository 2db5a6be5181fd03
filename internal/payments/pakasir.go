package payments

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
)

const DefaultPakasirURL = "https://app.pakasir.com"

type PakasirAdapter struct {
	BaseURL    string
	httpClient *http.Client
}

func NewPakasirAdapter(baseURL string, timeout time.Duration) *PakasirAdapter {
	if baseURL == "" {
		baseURL = DefaultPakasirURL
	}
	return &PakasirAdapter{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *PakasirAdapter) createURL(method string) string {
	return p.BaseURL + "/api/transactioncreate/" + url.PathEscape(method)
}

func (p *PakasirAdapter) detailURL() string {
	return p.BaseURL + "/api/transactiondetail"
}

func (p *PakasirAdapter) simulationURL() string {
	return p.BaseURL + "/api/paymentsimulation"
}

func (p *PakasirAdapter) CreateTransaction(ctx context.Context, req CreateRequest) (Response, error) {
	payload := map[string]any{
		"project":  req.Project,
		"order_id": req.OrderID,
		"amount":   req.Amount,
		"api_key":  req.APIKey,
	}
	return p.postJSON(ctx, "create", p.createURL(req.Method), payload)
}

func (p *PakasirAdapter) TransactionDetail(ctx context.Context, req DetailRequest) (Response, error) {
	q := url.Values{}
	q.Set("project", req.Project)
	q.Set("amount", strconv.FormatInt(req.Amount, 10))
	q.Set("order_id", req.OrderID)
	q.Set("api_key", req.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.detailURL()+"?"+q.Encode(), nil)
	if err != nil {
		return Response{}, fmt.Errorf("pakasir detail request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	return p.do(httpReq, "detail")
}

func (p *PakasirAdapter) SimulatePayment(ctx context.Context, req SimulateRequest) (Response, error) {
	payload := map[string]any{
		"project":  req.Project,
		"order_id": req.OrderID,
		"amount":   req.Amount,
		"api_key":  req.APIKey,
	}
	return p.postJSON(ctx, "simulation", p.simulationURL(), payload)
}

func (p *PakasirAdapter) postJSON(ctx context.Context, op, target string, payload any) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("pakasir %s encode: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("pakasir %s request: %w", op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	return p.do(httpReq, op)
}

func (p *PakasirAdapter) do(httpReq *http.Request, op string) (Response, error) {
	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("pakasir %s request: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Response{}, fmt.Errorf("pakasir %s read body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, &UpstreamError{Op: op, Status: resp.StatusCode, Body: raw}
	}

	// Non-JSON success bodies are wrapped so callers can always relay them as JSON.
	if !json.Valid(raw) {
		quoted, _ := json.Marshal(string(raw))
		raw = quoted
	}

	return Response{StatusCode: resp.StatusCode, Body: raw}, nil
}
