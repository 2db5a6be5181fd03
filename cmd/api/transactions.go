package main

import (
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"vypay/internal/payments"
)

var (
	proxiedRequests  = expvar.NewMap("proxied_requests")
	upstreamFailures = expvar.NewMap("upstream_failures")
)

// CreateTransactionPayload is the body of POST /api/create-transaction.
type CreateTransactionPayload struct {
	Method  string `json:"method" validate:"required,max=64"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	OrderID string `json:"order_id" validate:"required,orderid"`
	Project string `json:"project" validate:"omitempty,max=128"`
	APIKey  string `json:"api_key" validate:"omitempty,max=256"`
}

// SimulatePaymentPayload is the body of POST /api/simulate-payment.
type SimulatePaymentPayload struct {
	Project string `json:"project" validate:"omitempty,max=128"`
	OrderID string `json:"order_id" validate:"required,orderid"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	APIKey  string `json:"api_key" validate:"omitempty,max=256"`
}

// credentials passes caller credentials through and fills blanks from server config.
func (app *application) credentials(project, apiKey string) (payments.Credentials, error) {
	creds := payments.Credentials{
		Project: strings.TrimSpace(project),
		APIKey:  strings.TrimSpace(apiKey),
	}
	if creds.Project == "" {
		creds.Project = app.config.pakasir.project
	}
	if creds.APIKey == "" {
		creds.APIKey = app.config.pakasir.apiKey
	}

	if creds.Project == "" || creds.APIKey == "" {
		return payments.Credentials{}, errors.New("project and api_key are required")
	}
	return creds, nil
}

// CreateTransaction godoc
//
//	@Summary		Create a transaction
//	@Description	Forwards to the gateway's transactioncreate endpoint for the given method and relays its JSON.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateTransactionPayload	true	"Transaction"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	error	"Bad Request"
//	@Failure		502		{object}	error	"Gateway unreachable"
//	@Router			/create-transaction [post]
func (app *application) createTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateTransactionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	method, err := app.catalog.Lookup(payload.Method)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	creds, err := app.credentials(payload.Project, payload.APIKey)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	proxiedRequests.Add("create", 1)
	resp, err := app.gateway.CreateTransaction(r.Context(), payments.CreateRequest{
		Credentials: creds,
		Method:      method.ID,
		OrderID:     payload.OrderID,
		Amount:      payload.Amount,
	})
	if err != nil {
		app.upstreamErrorResponse(w, r, "create", err)
		return
	}

	app.logger.Infow("transaction created", "order_id", payload.OrderID, "method", method.ID, "amount", payload.Amount)
	writeRawJSON(w, http.StatusOK, resp.Body)
}

// TransactionStatus godoc
//
//	@Summary		Check transaction status
//	@Description	Forwards to the gateway's transactiondetail endpoint and relays its JSON.
//	@Tags			Transactions
//	@Produce		json
//	@Param			order_id	query		string	true	"Order id"
//	@Param			amount		query		int		true	"Amount"
//	@Param			project		query		string	false	"Project slug"
//	@Param			api_key		query		string	false	"API key"
//	@Success		200			{object}	map[string]any
//	@Failure		400			{object}	error	"Bad Request"
//	@Failure		502			{object}	error	"Gateway unreachable"
//	@Router			/transaction-status [get]
func (app *application) transactionStatusHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	orderID := q.Get("order_id")
	if err := Validate.Var(orderID, "required,orderid"); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid order_id"))
		return
	}

	amount, err := strconv.ParseInt(q.Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid amount"))
		return
	}

	creds, err := app.credentials(q.Get("project"), q.Get("api_key"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	proxiedRequests.Add("status", 1)
	resp, err := app.gateway.TransactionDetail(r.Context(), payments.DetailRequest{
		Credentials: creds,
		OrderID:     orderID,
		Amount:      amount,
	})
	if err != nil {
		app.upstreamErrorResponse(w, r, "status", err)
		return
	}

	writeRawJSON(w, http.StatusOK, resp.Body)
}

// SimulatePayment godoc
//
//	@Summary		Simulate a payment (sandbox)
//	@Description	Forwards to the gateway's paymentsimulation endpoint and relays its JSON.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SimulatePaymentPayload	true	"Simulation"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	error	"Bad Request"
//	@Failure		502		{object}	error	"Gateway unreachable"
//	@Router			/simulate-payment [post]
func (app *application) simulatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	var payload SimulatePaymentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	creds, err := app.credentials(payload.Project, payload.APIKey)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	proxiedRequests.Add("simulate", 1)
	resp, err := app.gateway.SimulatePayment(r.Context(), payments.SimulateRequest{
		Credentials: creds,
		OrderID:     payload.OrderID,
		Amount:      payload.Amount,
	})
	if err != nil {
		app.upstreamErrorResponse(w, r, "simulate", err)
		return
	}

	writeRawJSON(w, http.StatusOK, resp.Body)
}
