package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/moneymetrics"
	"github.com/google/subcommands"
)

// screensCmd lists the open screens.
type screensCmd struct{}

func (*screensCmd) Name() string     { return "screens" }
func (*screensCmd) Synopsis() string { return "list the open screens" }
func (*screensCmd) Usage() string {
	return `mm screens

  Lists the open screens, in order, with their dataset, view and series.
`
}

func (*screensCmd) SetFlags(f *flag.FlagSet) {}

func (*screensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := DecodeWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open workspace: %v\n", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	fmt.Fprintln(&b, "| Screen | Dataset | View | Series |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|")
	n := 0
	for s := range w.Screens() {
		n++
		dataset := s.Dataset
		switch {
		case dataset == "":
			dataset = "-"
		case !w.Datasets.Has(dataset):
			dataset += " (missing)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", s.Title, dataset, s.View, strings.Join(s.Plotted(), ", "))
	}
	if n == 0 {
		fmt.Println("No screens.")
		return subcommands.ExitSuccess
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// screenAddCmd opens a new screen.
type screenAddCmd struct {
	title   string
	dataset string
}

func (*screenAddCmd) Name() string     { return "screen-add" }
func (*screenAddCmd) Synopsis() string { return "open a new screen" }
func (*screenAddCmd) Usage() string {
	return `mm screen-add [-title <title>] [-d <dataset>]

  Opens a new graph screen. Without a title, the screen is called "Graph N"
  with the first N not already used.
`
}

func (c *screenAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "Screen title")
	f.StringVar(&c.dataset, "d", "", "Dataset to attach")
}

func (c *screenAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var s moneymetrics.Screen
	status := updateWorkspace(func(w *moneymetrics.Workspace) (err error) {
		if s, err = w.AddScreen(c.title); err != nil {
			return err
		}
		if c.dataset != "" {
			return w.Attach(s.Title, c.dataset)
		}
		return nil
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Opened screen %q\n", s.Title)
	}
	return status
}

// screenRmCmd closes screens.
type screenRmCmd struct{}

func (*screenRmCmd) Name() string     { return "screen-rm" }
func (*screenRmCmd) Synopsis() string { return "close screens" }
func (*screenRmCmd) Usage() string {
	return `mm screen-rm <title>...

  Closes screens. Their datasets are kept.
`
}

func (*screenRmCmd) SetFlags(f *flag.FlagSet) {}

func (*screenRmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: screen-rm requires at least one screen title.")
		return subcommands.ExitUsageError
	}
	return updateWorkspace(func(w *moneymetrics.Workspace) error {
		for _, title := range f.Args() {
			if err := w.RemoveScreen(title); err != nil {
				return err
			}
		}
		return nil
	})
}

// renameCmd renames a screen.
type renameCmd struct{}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename a screen" }
func (*renameCmd) Usage() string {
	return `mm rename <title> <new title>
`
}

func (*renameCmd) SetFlags(f *flag.FlagSet) {}

func (*renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: rename requires a title and a new title.")
		return subcommands.ExitUsageError
	}
	return updateWorkspace(func(w *moneymetrics.Workspace) error {
		return w.RenameScreen(f.Arg(0), f.Arg(1))
	})
}

// attachCmd shows a dataset on a screen.
type attachCmd struct{}

func (*attachCmd) Name() string     { return "attach" }
func (*attachCmd) Synopsis() string { return "show a dataset on a screen" }
func (*attachCmd) Usage() string {
	return `mm attach <title> <dataset>

  Shows a dataset on a screen, replacing the dataset previously shown.
`
}

func (*attachCmd) SetFlags(f *flag.FlagSet) {}

func (*attachCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: attach requires a screen title and a dataset name.")
		return subcommands.ExitUsageError
	}
	return updateWorkspace(func(w *moneymetrics.Workspace) error {
		return w.Attach(f.Arg(0), f.Arg(1))
	})
}

// detachCmd clears the dataset of a screen.
type detachCmd struct{}

func (*detachCmd) Name() string     { return "detach" }
func (*detachCmd) Synopsis() string { return "clear the dataset of a screen" }
func (*detachCmd) Usage() string {
	return `mm detach <title>
`
}

func (*detachCmd) SetFlags(f *flag.FlagSet) {}

func (*detachCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: detach requires a screen title.")
		return subcommands.ExitUsageError
	}
	return updateWorkspace(func(w *moneymetrics.Workspace) error {
		return w.Detach(f.Arg(0))
	})
}

// toggleCmd switches a screen between graph and table view.
type toggleCmd struct{}

func (*toggleCmd) Name() string     { return "toggle" }
func (*toggleCmd) Synopsis() string { return "switch a screen between graph and table" }
func (*toggleCmd) Usage() string {
	return `mm toggle <title>
`
}

func (*toggleCmd) SetFlags(f *flag.FlagSet) {}

func (*toggleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: toggle requires a screen title.")
		return subcommands.ExitUsageError
	}
	var view moneymetrics.View
	status := updateWorkspace(func(w *moneymetrics.Workspace) (err error) {
		view, err = w.ToggleView(f.Arg(0))
		return err
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Screen %q is now a %s\n", f.Arg(0), view)
	}
	return status
}

// seriesCmd selects the series plotted on a graph screen.
type seriesCmd struct {
	add string
	rm  string
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "select the series plotted on a screen" }
func (*seriesCmd) Usage() string {
	return `mm series [-add <field>] [-rm <field>] <title>

  Adds or removes a series of a graph screen. A series is a field name of the
  dataset records, or a jsonpath expression starting with '$'.
  Without flags, prints the plotted series.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Series to plot")
	f.StringVar(&c.rm, "rm", "", "Series to remove")
}

func (c *seriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: series requires a screen title.")
		return subcommands.ExitUsageError
	}
	title := f.Arg(0)
	if c.add == "" && c.rm == "" {
		w, err := DecodeWorkspace()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not open workspace: %v\n", err)
			return subcommands.ExitFailure
		}
		s, ok := w.Screen(title)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: screen %q not found.\n", title)
			return subcommands.ExitFailure
		}
		for _, series := range s.Plotted() {
			fmt.Println(series)
		}
		return subcommands.ExitSuccess
	}
	return updateWorkspace(func(w *moneymetrics.Workspace) error {
		if c.rm != "" {
			if err := w.RemoveSeries(title, c.rm); err != nil {
				return err
			}
		}
		if c.add != "" {
			return w.AddSeries(title, c.add)
		}
		return nil
	})
}
