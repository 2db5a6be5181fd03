package checkout

// Presenter renders controller state. Calls are made outside the controller lock, so an
// implementation may call back into the controller.
type Presenter interface {
	// Busy toggles while a create call is in flight; the pay action should be disabled.
	Busy(busy bool)
	Render(v View)
	// Reset clears any displayed detail after a method change.
	Reset()
	Cancelled()
	Completed(tx Transaction)
	// Error reports ValidationError (transient banner) and GatewayError/TimeoutError
	// (blocking modal).
	Error(err error)
}

// NopPresenter discards every event. Embed it to implement only part of Presenter.
type NopPresenter struct{}

func (NopPresenter) Busy(bool)             {}
func (NopPresenter) Render(View)           {}
func (NopPresenter) Reset()                {}
func (NopPresenter) Cancelled()            {}
func (NopPresenter) Completed(Transaction) {}
func (NopPresenter) Error(error)           {}
