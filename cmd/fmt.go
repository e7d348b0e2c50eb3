package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moneymetrics"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the profile into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `mm fmt

  Validates and formats the profile file. Ledger datasets, lists of records
  with exactly the month, contribution, growth_rate and balance fields, have
  their months and balances recomputed. Other datasets are kept as they are.
  Screens showing a missing dataset are reported, and the profile is written
  back in its canonical indented form.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return updateWorkspace(func(w *moneymetrics.Workspace) error {
		for name, raw := range w.Datasets.All() {
			if !moneymetrics.IsLedger(raw) {
				continue
			}
			l, err := w.Ledger(name)
			if err != nil {
				return err
			}
			if err := w.PutLedger(name, l, true); err != nil {
				return err
			}
		}
		for s := range w.Screens() {
			if s.Dataset != "" && !w.Datasets.Has(s.Dataset) {
				fmt.Fprintf(os.Stderr, "Warning: screen %q shows missing dataset %q\n", s.Title, s.Dataset)
			}
		}
		return nil
	})
}
