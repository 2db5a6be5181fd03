package main

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"vypay/internal/checkout"
	"vypay/internal/payments"
)

// terminalPresenter prints controller events. Completed may arrive from the poll
// goroutine, so writes are serialized.
type terminalPresenter struct {
	mu   sync.Mutex
	out  io.Writer
	done chan struct{}
	once sync.Once
}

func newTerminalPresenter(out io.Writer) *terminalPresenter {
	return &terminalPresenter{out: out, done: make(chan struct{})}
}

// Done is closed once the transaction completes.
func (p *terminalPresenter) Done() <-chan struct{} { return p.done }

func (p *terminalPresenter) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *terminalPresenter) Busy(busy bool) {
	if busy {
		p.printf("Creating transaction...\n")
	}
}

func (p *terminalPresenter) Render(v checkout.View) {
	tx := v.Transaction
	d := tx.Detail

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\n%s\n", v.Hints.Title)
	fmt.Fprintf(p.out, "  Order:   %s\n", tx.OrderID)
	fmt.Fprintf(p.out, "  Amount:  %s\n", payments.FormatRupiah(tx.Amount))
	if d.Fee > 0 {
		fmt.Fprintf(p.out, "  Fee:     %s\n", payments.FormatRupiah(d.Fee))
	}
	fmt.Fprintf(p.out, "  Total:   %s\n", payments.FormatRupiah(d.Total()))
	fmt.Fprintf(p.out, "  %s: %s\n", v.Hints.PrimaryLabel, v.Reference())
	if !d.ExpiredAt.IsZero() {
		fmt.Fprintf(p.out, "  Expires: %s\n", d.ExpiredAt.Local().Format("02 Jan 2006 15:04"))
	}
	fmt.Fprintf(p.out, "\n%s\nWaiting for payment...\n", v.Hints.Instructions)
}

func (p *terminalPresenter) Reset() {}

func (p *terminalPresenter) Cancelled() {
	p.printf("Transaction cancelled.\n")
}

func (p *terminalPresenter) Completed(tx checkout.Transaction) {
	p.printf("Payment completed for %s.\n", tx.OrderID)
	p.once.Do(func() { close(p.done) })
}

func (p *terminalPresenter) Error(err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		p.printf("! %s\n", verr.Message)
		return
	}

	var gerr *checkout.GatewayError
	if errors.As(err, &gerr) {
		p.printf("Payment error: %s\n", gerr.Message)
		return
	}

	p.printf("Payment error: %s\n", err)
}
