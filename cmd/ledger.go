package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moneymetrics"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// planCmd creates a ledger with constant contributions and growth rate.
type planCmd struct {
	name         string
	contribution string
	rate         string
	months       int
	overwrite    bool
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "create a savings plan ledger" }
func (*planCmd) Usage() string {
	return `mm plan -name <dataset> -c <contribution> -r <rate> -months <n> [-overwrite]

  Creates a ledger dataset of n months with the same monthly contribution and
  growth rate. The growth rate is a monthly fraction, 0.01 for 1%.

Usage Examples:
$ mm plan -name 401k -c 500 -r 0.005 -months 120
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Dataset name")
	f.StringVar(&c.contribution, "c", "0", "Monthly contribution")
	f.StringVar(&c.rate, "r", "0", "Monthly growth rate, as a fraction")
	f.IntVar(&c.months, "months", 12, "Number of months")
	f.BoolVar(&c.overwrite, "overwrite", false, "Replace an existing dataset")
}

func (c *planCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}
	contribution, err := parseDecimal("c", c.contribution)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate, err := parseDecimal("r", c.rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var plan *moneymetrics.Ledger
	status := updateWorkspace(func(w *moneymetrics.Workspace) error {
		plan, err = moneymetrics.NewPlan(c.months, contribution, rate)
		if err != nil {
			return err
		}
		return w.PutLedger(c.name, plan, c.overwrite)
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Ledger %q: %d months, final balance %s\n", c.name, plan.Len(), moneymetrics.M(plan.Balance(), *currency))
	}
	return status
}

// appendCmd adds a month at the end of a ledger.
type appendCmd struct {
	dataset      string
	contribution string
	rate         string
}

func (*appendCmd) Name() string     { return "append" }
func (*appendCmd) Synopsis() string { return "append a month to a ledger" }
func (*appendCmd) Usage() string {
	return `mm append -d <dataset> -c <contribution> -r <rate>

  Appends a month to a ledger dataset. The ledger is created if it does not
  exist yet.
`
}

func (c *appendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataset, "d", "", "Ledger dataset name")
	f.StringVar(&c.contribution, "c", "0", "Contribution of the month")
	f.StringVar(&c.rate, "r", "0", "Growth rate of the month, as a fraction")
}

func (c *appendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.dataset == "" {
		fmt.Fprintln(os.Stderr, "Error: -d is required.")
		return subcommands.ExitUsageError
	}
	contribution, err := parseDecimal("c", c.contribution)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate, err := parseDecimal("r", c.rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var entry moneymetrics.Entry
	status := updateWorkspace(func(w *moneymetrics.Workspace) error {
		l := moneymetrics.NewLedger()
		if w.Datasets.Has(c.dataset) {
			if l, err = w.Ledger(c.dataset); err != nil {
				return err
			}
		}
		l.Append(contribution, rate)
		entry, _ = l.Entry(l.Len())
		return w.PutLedger(c.dataset, l, true)
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Month %d: balance %s\n", entry.Month, moneymetrics.M(entry.Balance, *currency))
	}
	return status
}

// modifyCmd changes the contribution or growth rate of a month.
type modifyCmd struct {
	dataset      string
	month        int
	contribution string
	rate         string
}

func (*modifyCmd) Name() string     { return "modify" }
func (*modifyCmd) Synopsis() string { return "modify a month of a ledger" }
func (*modifyCmd) Usage() string {
	return `mm modify -d <dataset> -m <month> [-c <contribution>] [-r <rate>]

  Replaces the contribution and/or the growth rate of a month. Balances of
  that month and all following months are recomputed.
`
}

func (c *modifyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataset, "d", "", "Ledger dataset name")
	f.IntVar(&c.month, "m", 0, "Month to modify, starting at 1")
	f.StringVar(&c.contribution, "c", "", "New contribution, unchanged if empty")
	f.StringVar(&c.rate, "r", "", "New growth rate, unchanged if empty")
}

func (c *modifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.dataset == "" {
		fmt.Fprintln(os.Stderr, "Error: -d is required.")
		return subcommands.ExitUsageError
	}
	var updates []moneymetrics.Update
	for _, opt := range []struct {
		name, value string
		update      func(decimal.Decimal) moneymetrics.Update
	}{
		{"c", c.contribution, moneymetrics.Contribution},
		{"r", c.rate, moneymetrics.GrowthRate},
	} {
		if opt.value == "" {
			continue
		}
		d, err := parseDecimal(opt.name, opt.value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		updates = append(updates, opt.update(d))
	}

	return updateWorkspace(func(w *moneymetrics.Workspace) error {
		l, err := w.Ledger(c.dataset)
		if err != nil {
			return err
		}
		if err := l.Modify(c.month, updates...); err != nil {
			return err
		}
		return w.PutLedger(c.dataset, l, true)
	})
}

// deleteMonthCmd removes a month from a ledger.
type deleteMonthCmd struct {
	dataset string
	month   int
}

func (*deleteMonthCmd) Name() string     { return "delete-month" }
func (*deleteMonthCmd) Synopsis() string { return "delete a month from a ledger" }
func (*deleteMonthCmd) Usage() string {
	return `mm delete-month -d <dataset> -m <month>

  Deletes a month from a ledger. Following months are renumbered and their
  balances recomputed.
`
}

func (c *deleteMonthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataset, "d", "", "Ledger dataset name")
	f.IntVar(&c.month, "m", 0, "Month to delete, starting at 1")
}

func (c *deleteMonthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.dataset == "" {
		fmt.Fprintln(os.Stderr, "Error: -d is required.")
		return subcommands.ExitUsageError
	}
	return updateWorkspace(func(w *moneymetrics.Workspace) error {
		l, err := w.Ledger(c.dataset)
		if err != nil {
			return err
		}
		if err := l.Delete(c.month); err != nil {
			return err
		}
		return w.PutLedger(c.dataset, l, true)
	})
}
