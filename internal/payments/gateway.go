package payments

import "context"

// Gateway is the contract of the upstream payment provider. Every call passes the
// caller's credentials through untouched and returns the provider's JSON body.
type Gateway interface {
	CreateTransaction(ctx context.Context, req CreateRequest) (Response, error)
	TransactionDetail(ctx context.Context, req DetailRequest) (Response, error)
	SimulatePayment(ctx context.Context, req SimulateRequest) (Response, error)
}
