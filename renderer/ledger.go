package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/moneymetrics"
)

// LedgerTable renders ledger entries with amounts formatted in currency.
func LedgerTable(entries []moneymetrics.Entry, currency string) string {
	if len(entries) == 0 {
		return "No data\n"
	}
	var b strings.Builder
	fmt.Fprintln(&b, "| Month | Contribution | Growth | Balance |")
	fmt.Fprintln(&b, "|---:|---:|---:|---:|")

	total := moneymetrics.M(0, currency)
	for _, e := range entries {
		contribution := moneymetrics.M(e.Contribution, currency)
		total = total.Add(contribution)
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
			e.Month,
			contribution,
			moneymetrics.Rate(e.GrowthRate),
			moneymetrics.M(e.Balance, currency),
		)
	}
	last := entries[len(entries)-1]
	fmt.Fprintf(&b, "| **Total** | **%s** | | **%s** |\n", total, moneymetrics.M(last.Balance, currency))
	return b.String()
}
