package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"vypay/internal/payments"
)

const (
	DefaultPollInterval  = 10 * time.Second
	DefaultCreateTimeout = 30 * time.Second
)

// Proxy is the transaction proxy as seen by the controller.
type Proxy interface {
	CreateTransaction(ctx context.Context, req payments.CreateRequest) (payments.PaymentDetail, error)
	CheckStatus(ctx context.Context, req payments.DetailRequest) (payments.TransactionStatus, error)
}

type OrderIDGenerator interface {
	Generate() (string, error)
}

// upstreamError is implemented by proxy errors that carry the upstream's answer.
type upstreamError interface {
	error
	HTTPStatus() int
	UpstreamMessage() string
}

type Config struct {
	Catalog       *payments.Catalog
	Proxy         Proxy
	Presenter     Presenter
	OrderIDs      OrderIDGenerator
	Credentials   payments.Credentials
	PollInterval  time.Duration
	CreateTimeout time.Duration
	Logger        *zap.SugaredLogger
}

// Controller drives one checkout session: method selection, transaction creation and
// status polling. At most one transaction is live at a time.
type Controller struct {
	catalog       *payments.Catalog
	proxy         Proxy
	presenter     Presenter
	orderIDs      OrderIDGenerator
	creds         payments.Credentials
	pollInterval  time.Duration
	createTimeout time.Duration
	logger        *zap.SugaredLogger
	now           func() time.Time

	mu       sync.Mutex
	selected payments.Method
	live     *Transaction
	state    State
	busy     bool
	closed   bool
	// epoch changes whenever the live transaction is cleared, so a create or poll that
	// started before the clear cannot write its result afterwards.
	epoch    uint64
	stopPoll context.CancelFunc
}

func New(cfg Config) (*Controller, error) {
	if cfg.Proxy == nil {
		return nil, errors.New("checkout: proxy is required")
	}
	if cfg.OrderIDs == nil {
		return nil, errors.New("checkout: order id generator is required")
	}
	if cfg.Catalog == nil {
		cfg.Catalog = payments.DefaultCatalog()
	}
	if cfg.Presenter == nil {
		cfg.Presenter = NopPresenter{}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.CreateTimeout <= 0 {
		cfg.CreateTimeout = DefaultCreateTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	return &Controller{
		catalog:       cfg.Catalog,
		proxy:         cfg.Proxy,
		presenter:     cfg.Presenter,
		orderIDs:      cfg.OrderIDs,
		creds:         cfg.Credentials,
		pollInterval:  cfg.PollInterval,
		createTimeout: cfg.CreateTimeout,
		logger:        cfg.Logger,
		now:           time.Now,
		selected:      cfg.Catalog.Default(),
		state:         StateIdle,
	}, nil
}

// SelectMethod switches the payment method. Any live transaction is dropped.
func (c *Controller) SelectMethod(id string) error {
	m, err := c.catalog.Lookup(id)
	if err != nil {
		return unknownMethodError(id)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.selected = m
	c.clearLocked(StateIdle)
	c.mu.Unlock()

	c.presenter.Reset()
	return nil
}

// CreateTransaction validates the amount, creates a transaction for the selected method
// and starts polling it. The returned Transaction is a copy. Cancelling ctx, or a
// Cancel/SelectMethod while the call is in flight, ends it without a presenter error.
func (c *Controller) CreateTransaction(ctx context.Context, amountInput string) (*Transaction, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if c.live != nil {
		c.mu.Unlock()
		return nil, ErrLiveTransaction
	}

	method := c.selected
	if method.ID == "" {
		c.mu.Unlock()
		return nil, c.fail(ErrNoMethodSelected)
	}

	amount, verr := parseAmount(amountInput)
	if verr != nil {
		c.mu.Unlock()
		return nil, c.fail(verr)
	}

	orderID, err := c.orderIDs.Generate()
	if err != nil {
		c.mu.Unlock()
		return nil, c.fail(&GatewayError{Message: msgUnexpected, Err: err})
	}

	c.busy = true
	c.state = StateCreating
	epoch := c.epoch
	c.mu.Unlock()

	c.presenter.Busy(true)
	defer c.presenter.Busy(false)

	detail, err := c.create(ctx, payments.CreateRequest{
		Credentials: c.creds,
		Method:      method.ID,
		OrderID:     orderID,
		Amount:      amount,
	})

	c.mu.Lock()
	c.busy = false

	if err != nil {
		stale := c.closed || epoch != c.epoch
		if !stale {
			c.state = StateIdle
		}
		c.mu.Unlock()

		switch {
		case errors.Is(err, context.Canceled):
			c.logger.Infow("create transaction cancelled by caller", "order_id", orderID)
			return nil, err
		case stale:
			c.logger.Infow("create failed after cancel", "order_id", orderID, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrDiscarded, err)
		}

		c.logger.Warnw("create transaction failed", "order_id", orderID, "method", method.ID, "error", err)
		return nil, c.fail(err)
	}

	if c.closed || epoch != c.epoch {
		c.mu.Unlock()
		c.logger.Infow("discarding transaction created after cancel", "order_id", orderID)
		return nil, ErrDiscarded
	}

	tx := &Transaction{
		OrderID:   orderID,
		Amount:    amount,
		Method:    method,
		Status:    "pending",
		CreatedAt: c.now(),
		Detail:    detail,
	}
	c.live = tx
	c.state = StateActive
	c.startPollingLocked()
	out := *tx
	c.mu.Unlock()

	hints, _ := ViewFor(method.Category)
	c.presenter.Render(View{Hints: hints, Transaction: out})

	c.logger.Infow("transaction created", "order_id", orderID, "method", method.ID, "amount", amount)
	return &out, nil
}

func (c *Controller) create(ctx context.Context, req payments.CreateRequest) (payments.PaymentDetail, error) {
	// A caller deadline shorter than createTimeout is the one that fires.
	after := c.createTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < after {
			after = max(d, 0)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.createTimeout)
	defer cancel()

	detail, err := c.proxy.CreateTransaction(ctx, req)
	if err != nil {
		return payments.PaymentDetail{}, classify(ctx, err, after)
	}
	if detail.OrderID != "" && detail.OrderID != req.OrderID {
		return payments.PaymentDetail{}, &GatewayError{
			Message: msgMalformedResponse,
			Err:     errors.New("order id mismatch: " + detail.OrderID),
		}
	}
	return detail, nil
}

func classify(ctx context.Context, err error, after time.Duration) error {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("create transaction: %w", context.Canceled)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{After: after.Round(time.Millisecond)}
	}

	var ue upstreamError
	if errors.As(err, &ue) {
		msg := ue.UpstreamMessage()
		if msg == "" {
			msg = msgGatewayRejected
		}
		return &GatewayError{Status: ue.HTTPStatus(), Message: msg, Err: err}
	}

	if errors.Is(err, payments.ErrMalformedResponse) {
		return &GatewayError{Message: msgMalformedResponse, Err: err}
	}

	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge
	}

	return &GatewayError{Message: msgGatewayUnreachable, Err: err}
}

// PollStatus checks the live transaction once. Failures are logged and swallowed; the
// next tick retries.
func (c *Controller) PollStatus(ctx context.Context) {
	c.mu.Lock()
	tx := c.live
	if tx == nil || c.closed {
		c.mu.Unlock()
		return
	}
	orderID, amount := tx.statusKey()
	c.mu.Unlock()

	status, err := c.proxy.CheckStatus(ctx, payments.DetailRequest{
		Credentials: c.creds,
		OrderID:     orderID,
		Amount:      amount,
	})
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Warnw("status check failed", "order_id", orderID, "error", err)
		}
		return
	}

	c.mu.Lock()
	if c.live != tx {
		c.mu.Unlock()
		return
	}
	if status.Status != "" {
		tx.Status = status.Status
	}
	if !status.Completed() {
		c.mu.Unlock()
		return
	}

	c.live = nil
	c.epoch++
	c.state = StateCompleted
	c.stopPollingLocked()
	done := *tx
	c.mu.Unlock()

	c.logger.Infow("transaction completed", "order_id", orderID)
	c.presenter.Completed(done)
}

// Cancel drops the live transaction, if any. It always succeeds.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	hadWork := c.live != nil || c.busy
	if hadWork {
		c.clearLocked(StateCancelled)
	}
	c.mu.Unlock()

	if hadWork {
		c.presenter.Cancelled()
	}
}

// Close stops polling and makes every further operation fail with ErrClosed.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.clearLocked(c.state)
	return nil
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Selected: c.selected,
		Busy:     c.busy,
		State:    c.state,
	}
	if c.busy {
		s.State = StateCreating
	}
	if c.live != nil {
		live := *c.live
		s.Live = &live
	}
	return s
}

func (c *Controller) clearLocked(next State) {
	c.live = nil
	c.epoch++
	c.stopPollingLocked()
	c.state = next
}

func (c *Controller) startPollingLocked() {
	c.stopPollingLocked()

	ctx, cancel := context.WithCancel(context.Background())
	c.stopPoll = cancel
	go c.pollLoop(ctx)
}

func (c *Controller) stopPollingLocked() {
	if c.stopPoll != nil {
		c.stopPoll()
		c.stopPoll = nil
	}
}

func (c *Controller) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.PollStatus(ctx)
		}
	}
}

func (c *Controller) fail(err error) error {
	c.presenter.Error(err)
	return err
}

func parseAmount(input string) (int64, *ValidationError) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrAmountBelowMinimum
	}

	amount, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if amount < payments.MinAmount {
		return 0, ErrAmountBelowMinimum
	}
	return amount, nil
}
