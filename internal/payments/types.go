package payments

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MinAmount is the smallest amount (rupiah) the provider accepts.
const MinAmount int64 = 1000

const StatusCompleted = "completed"

// Credentials are the provider-issued project slug and API key.
type Credentials struct {
	Project string
	APIKey  string
}

type CreateRequest struct {
	Credentials
	Method  string
	OrderID string
	Amount  int64
}

type DetailRequest struct {
	Credentials
	OrderID string
	Amount  int64
}

type SimulateRequest struct {
	Credentials
	OrderID string
	Amount  int64
}

// Response is a successful upstream reply, body kept verbatim so the proxy can relay it.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// PaymentDetail is the provider's projection of a created transaction.
type PaymentDetail struct {
	Project       string    `json:"project"`
	OrderID       string    `json:"order_id"`
	Amount        int64     `json:"amount"`
	Fee           int64     `json:"fee"`
	TotalPayment  int64     `json:"total_payment"`
	PaymentMethod string    `json:"payment_method"`
	PaymentNumber string    `json:"payment_number"`
	ExpiredAt     Timestamp `json:"expired_at"`
}

// Total falls back to Amount when the provider omits total_payment.
func (d PaymentDetail) Total() int64 {
	if d.TotalPayment > 0 {
		return d.TotalPayment
	}
	return d.Amount
}

// TransactionStatus is the provider's projection returned by the detail endpoint.
type TransactionStatus struct {
	Project       string    `json:"project"`
	OrderID       string    `json:"order_id"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	CompletedAt   Timestamp `json:"completed_at"`
}

func (s TransactionStatus) Completed() bool {
	return s.Status == StatusCompleted
}

var ErrMalformedResponse = errors.New("malformed provider response")

// DecodePaymentDetail parses a create/simulate body of the form {"payment": {...}}.
func DecodePaymentDetail(body []byte) (PaymentDetail, error) {
	var envelope struct {
		Payment *PaymentDetail `json:"payment"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return PaymentDetail{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if envelope.Payment == nil {
		return PaymentDetail{}, fmt.Errorf("%w: missing payment object", ErrMalformedResponse)
	}
	if envelope.Payment.OrderID == "" {
		return PaymentDetail{}, fmt.Errorf("%w: missing order_id", ErrMalformedResponse)
	}
	return *envelope.Payment, nil
}

// DecodeTransactionStatus parses a detail body of the form {"transaction": {...}}.
func DecodeTransactionStatus(body []byte) (TransactionStatus, error) {
	var envelope struct {
		Transaction *TransactionStatus `json:"transaction"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return TransactionStatus{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if envelope.Transaction == nil {
		return TransactionStatus{}, fmt.Errorf("%w: missing transaction object", ErrMalformedResponse)
	}
	return *envelope.Transaction, nil
}
