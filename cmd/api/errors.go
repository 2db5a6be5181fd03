package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"vypay/internal/payments"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "not found")
}

func (app *application) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	app.notFoundResponse(w, r, errors.New("no such route"))
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// upstreamErrorResponse maps a gateway failure to a local response. Upstream rejections
// keep the upstream status and carry the upstream body in "error"; transport failures
// become 502.
func (app *application) upstreamErrorResponse(w http.ResponseWriter, r *http.Request, op string, err error) {
	upstreamFailures.Add(op, 1)

	var ue *payments.UpstreamError
	if errors.As(err, &ue) {
		app.logger.Warnw("upstream rejected request", "op", op, "status", ue.Status, "error", ue.Error())

		status := ue.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}

		var body any = json.RawMessage(ue.Body)
		if !json.Valid(ue.Body) {
			body = string(ue.Body)
		}
		writeJSON(w, status, &errorEnvelope{Error: body, Status: status})
		return
	}

	app.logger.Errorw("upstream request failed", "op", op, "error", err.Error())
	writeJSONError(w, http.StatusBadGateway, "payment gateway unreachable")
}
