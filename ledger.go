package moneymetrics

import (
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// Entry is one month of a contribution schedule.
//
// Balance is the account value at the end of the month:
//
//	Balance = (previous Balance + Contribution) * (1 + GrowthRate)
//
// where the previous balance of the first month is zero.
type Entry struct {
	Month        int             `json:"month"`
	Contribution decimal.Decimal `json:"contribution"`
	GrowthRate   decimal.Decimal `json:"growth_rate"`
	Balance      decimal.Decimal `json:"balance"`
}

// Ledger is an ordered list of monthly entries, the first entry is month 1.
//
// In a Ledger, months are always numbered from 1 without gaps and every
// balance follows from the previous one. Every method that changes the
// entries recomputes the affected months before returning.
type Ledger struct {
	entries []Entry
}

// NewLedger creates a ledger from a list of records.
//
// Only the order, contributions and growth rates of the records are used:
// months and balances are always recomputed, so that external data cannot
// break the ledger invariants.
func NewLedger(records ...Entry) *Ledger {
	l := &Ledger{entries: slices.Clone(records)}
	l.recompute(0)
	return l
}

// NewPlan creates a ledger of months identical contributions and growth rates.
func NewPlan(months int, contribution, growthRate decimal.Decimal) (*Ledger, error) {
	if months <= 0 {
		return nil, fmt.Errorf("cannot plan %d months: %w", months, ErrOutOfRange)
	}
	l := &Ledger{entries: make([]Entry, 0, months)}
	for range months {
		l.Append(contribution, growthRate)
	}
	return l, nil
}

// Len returns the number of months in the ledger.
func (l *Ledger) Len() int { return len(l.entries) }

// Append adds a new month at the end of the ledger.
func (l *Ledger) Append(contribution, growthRate decimal.Decimal) {
	l.entries = append(l.entries, Entry{
		Month:        len(l.entries) + 1,
		Contribution: contribution,
		GrowthRate:   growthRate,
		Balance:      compound(l.Balance(), contribution, growthRate),
	})
}

// Delete removes a month (1-based). Following months are renumbered and their
// balances recomputed.
func (l *Ledger) Delete(month int) error {
	i, err := l.index(month)
	if err != nil {
		return err
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	l.recompute(i)
	return nil
}

// Update changes an entry. It is used by Modify.
type Update func(Entry) Entry

// Contribution sets the contribution of the modified month.
func Contribution(c decimal.Decimal) Update {
	return func(e Entry) Entry {
		e.Contribution = c
		return e
	}
}

// GrowthRate sets the growth rate of the modified month.
func GrowthRate(r decimal.Decimal) Update {
	return func(e Entry) Entry {
		e.GrowthRate = r
		return e
	}
}

// Modify applies updates to a month (1-based) then recomputes the balance of
// this month and all following ones. Fields without update are unchanged.
func (l *Ledger) Modify(month int, updates ...Update) error {
	i, err := l.index(month)
	if err != nil {
		return err
	}
	e := l.entries[i]
	for _, update := range updates {
		e = update(e)
	}
	l.entries[i] = e
	l.recompute(i)
	return nil
}

// Entry returns the entry of a month (1-based), false if there is no such month.
func (l *Ledger) Entry(month int) (Entry, bool) {
	i, err := l.index(month)
	if err != nil {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Entries iterates over the entries in month order.
func (l *Ledger) Entries() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for _, e := range l.entries {
			if !yield(e.Month, e) {
				return
			}
		}
	}
}

// Export returns a copy of all entries, in month order. It is never nil.
func (l *Ledger) Export() []Entry {
	return append(make([]Entry, 0, len(l.entries)), l.entries...)
}

// Balance returns the balance of the last month, zero for an empty ledger.
func (l *Ledger) Balance() decimal.Decimal {
	if len(l.entries) == 0 {
		return decimal.Zero
	}
	return l.entries[len(l.entries)-1].Balance
}

// TotalContributions returns the sum of all contributions.
func (l *Ledger) TotalContributions() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.entries {
		total = total.Add(e.Contribution)
	}
	return total
}

// index converts a 1-based month into an index in entries.
func (l *Ledger) index(month int) (int, error) {
	if month < 1 || month > len(l.entries) {
		return 0, fmt.Errorf("month %d not in [1, %d]: %w", month, len(l.entries), ErrOutOfRange)
	}
	return month - 1, nil
}

// recompute renumbers and recomputes balances from index start to the end.
// Entries before start must already be correct.
func (l *Ledger) recompute(start int) {
	prior := decimal.Zero
	if start > 0 {
		prior = l.entries[start-1].Balance
	}
	for i := start; i < len(l.entries); i++ {
		e := l.entries[i]
		e.Month = i + 1
		e.Balance = compound(prior, e.Contribution, e.GrowthRate)
		l.entries[i] = e
		prior = e.Balance
	}
}

// BalancePrecision is the number of decimal places kept on balances.
const BalancePrecision = 10

// compound returns (prior + contribution) * (1 + growthRate), rounded to
// BalancePrecision places.
func compound(prior, contribution, growthRate decimal.Decimal) decimal.Decimal {
	return prior.Add(contribution).Mul(decimal.NewFromInt(1).Add(growthRate)).Round(BalancePrecision)
}
