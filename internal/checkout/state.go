package checkout

import (
	"time"

	"vypay/internal/payments"
)

type State string

const (
	StateIdle      State = "idle"
	StateCreating  State = "creating"
	StateActive    State = "active"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Transaction is one payment attempt and the provider's detail for it.
type Transaction struct {
	OrderID   string
	Amount    int64
	Method    payments.Method
	Status    string
	CreatedAt time.Time
	Detail    payments.PaymentDetail
}

// statusKey is the order id and amount the provider knows the transaction by.
func (t *Transaction) statusKey() (string, int64) {
	orderID, amount := t.Detail.OrderID, t.Detail.Amount
	if orderID == "" {
		orderID = t.OrderID
	}
	if amount == 0 {
		amount = t.Amount
	}
	return orderID, amount
}

// Snapshot is a point-in-time copy of controller state.
type Snapshot struct {
	Selected payments.Method
	Live     *Transaction
	Busy     bool
	State    State
}
