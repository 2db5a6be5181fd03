package main

import (
	"fmt"
	"net/http"
	"strconv"

	"vypay/internal/payments"
)

type methodsResponse struct {
	Methods   []payments.Method           `json:"methods"`
	MinAmount int64                       `json:"min_amount"`
	Fees      map[payments.Category]int64 `json:"fees"`
}

// ListMethods godoc
//
//	@Summary		List payment methods
//	@Description	Returns the configured payment methods, minimum amount and flat fees. Credentials are never included.
//	@Tags			Methods
//	@Produce		json
//	@Success		200	{object}	methodsResponse
//	@Router			/methods [get]
func (app *application) listMethodsHandler(w http.ResponseWriter, r *http.Request) {
	resp := methodsResponse{
		Methods:   app.catalog.Methods(),
		MinAmount: payments.MinAmount,
		Fees:      app.fees.Flat,
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// FeeEstimate godoc
//
//	@Summary		Estimate fees
//	@Description	Indicative fee and total for paying an amount with a method. The gateway's create response is authoritative.
//	@Tags			Methods
//	@Produce		json
//	@Param			method	query		string	true	"Method id"
//	@Param			amount	query		int		true	"Amount"
//	@Success		200		{object}	payments.FeeEstimate
//	@Failure		400		{object}	error	"Bad Request"
//	@Router			/fee-estimate [get]
func (app *application) feeEstimateHandler(w http.ResponseWriter, r *http.Request) {
	method, err := app.catalog.Lookup(r.URL.Query().Get("method"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid amount"))
		return
	}

	est, err := app.fees.Estimate(method, amount)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, est); err != nil {
		app.internalServerError(w, r, err)
	}
}
