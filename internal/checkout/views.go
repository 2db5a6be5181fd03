package checkout

import "vypay/internal/payments"

type RenderMode string

const (
	RenderQR             RenderMode = "qr"
	RenderVirtualAccount RenderMode = "virtual_account"
	RenderRedirect       RenderMode = "redirect"
)

// ViewHints tell a presenter how to lay out a payment detail.
type ViewHints struct {
	Mode         RenderMode
	Icon         string
	Title        string
	PrimaryLabel string
	Instructions string
}

var viewHints = map[payments.Category]ViewHints{
	payments.CategoryQRIS: {
		Mode:         RenderQR,
		Icon:         "qrcode",
		Title:        "QRIS Payment",
		PrimaryLabel: "QRIS payload",
		Instructions: "Scan the QR code with any QRIS-enabled banking or e-wallet app.",
	},
	payments.CategoryVirtualAccount: {
		Mode:         RenderVirtualAccount,
		Icon:         "university",
		Title:        "Virtual Account",
		PrimaryLabel: "Virtual account number",
		Instructions: "Transfer the total amount to the virtual account number above.",
	},
	payments.CategoryPayPal: {
		Mode:         RenderRedirect,
		Icon:         "paypal",
		Title:        "PayPal Payment",
		PrimaryLabel: "PayPal Express Checkout",
		Instructions: "You will be redirected to PayPal after confirmation.",
	},
}

// ViewFor returns the hints for a method category.
func ViewFor(c payments.Category) (ViewHints, bool) {
	h, ok := viewHints[c]
	return h, ok
}

// View is what a presenter receives when a transaction becomes live.
type View struct {
	Hints       ViewHints
	Transaction Transaction
}

// Reference is the text a user copies: the QR payload or VA number. Redirect views
// have no reference of their own and show the primary label instead.
func (v View) Reference() string {
	if v.Hints.Mode == RenderRedirect {
		return v.Hints.PrimaryLabel
	}
	if v.Transaction.Detail.PaymentNumber == "" {
		return "-"
	}
	return v.Transaction.Detail.PaymentNumber
}
