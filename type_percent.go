package moneymetrics

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a rate expressed in percent (1.5 means 1.5%).
type Percent float64

// Rate converts a growth rate (0.015) to a Percent (1.5).
func Rate(r decimal.Decimal) Percent {
	return Percent(r.Shift(2).InexactFloat64())
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
