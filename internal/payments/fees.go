package payments

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FeeTable holds the indicative fees shown before a transaction is created. The
// provider's create response carries the authoritative fee.
type FeeTable struct {
	Flat map[Category]int64

	// PayPal charges in USD: a percentage plus a fixed part, converted at IDRPerUSD.
	IDRPerUSD     decimal.Decimal
	PayPalPercent decimal.Decimal
	PayPalFixed   decimal.Decimal
}

func DefaultFeeTable() FeeTable {
	return FeeTable{
		Flat: map[Category]int64{
			CategoryQRIS:           1000,
			CategoryVirtualAccount: 1500,
			CategoryPayPal:         3000,
		},
		IDRPerUSD:     decimal.NewFromInt(15000),
		PayPalPercent: decimal.RequireFromString("4.4"),
		PayPalFixed:   decimal.RequireFromString("0.30"),
	}
}

type FeeEstimate struct {
	Method   string           `json:"method"`
	Amount   int64            `json:"amount"`
	Fee      int64            `json:"fee"`
	Total    int64            `json:"total"`
	TotalUSD *decimal.Decimal `json:"total_usd,omitempty"`
}

// Estimate returns the expected fee for paying amount with m. PayPal uses the larger
// of its flat fee and the converted percentage fee.
func (t FeeTable) Estimate(m Method, amount int64) (FeeEstimate, error) {
	if amount < MinAmount {
		return FeeEstimate{}, fmt.Errorf("amount %d below minimum %d", amount, MinAmount)
	}

	est := FeeEstimate{Method: m.ID, Amount: amount, Fee: t.Flat[m.Category]}

	if m.Category == CategoryPayPal && t.IDRPerUSD.IsPositive() {
		usd := decimal.NewFromInt(amount).Div(t.IDRPerUSD)
		feeUSD := usd.Mul(t.PayPalPercent).Div(decimal.NewFromInt(100)).Add(t.PayPalFixed)
		feeIDR := feeUSD.Mul(t.IDRPerUSD).Ceil().IntPart()
		if feeIDR > est.Fee {
			est.Fee = feeIDR
		}
		totalUSD := decimal.NewFromInt(amount + est.Fee).Div(t.IDRPerUSD).RoundCeil(2)
		est.TotalUSD = &totalUSD
	}

	est.Total = amount + est.Fee
	return est, nil
}

// FormatRupiah renders 1500000 as "Rp 1.500.000".
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return "Rp " + sign + b.String()
}
