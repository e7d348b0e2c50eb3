package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/moneymetrics"
	"github.com/etnz/moneymetrics/renderer"
	"github.com/google/subcommands"
)

// datasetsCmd lists datasets.
type datasetsCmd struct{}

func (*datasetsCmd) Name() string     { return "datasets" }
func (*datasetsCmd) Synopsis() string { return "list the datasets of the profile" }
func (*datasetsCmd) Usage() string {
	return `mm datasets

  Lists all datasets of the profile, and the screens that show them.
`
}

func (*datasetsCmd) SetFlags(f *flag.FlagSet) {}

func (*datasetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := DecodeWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open workspace: %v\n", err)
		return subcommands.ExitFailure
	}
	if w.Datasets.Len() == 0 {
		fmt.Println("No datasets.")
		return subcommands.ExitSuccess
	}

	shownOn := make(map[string][]string)
	for s := range w.Screens() {
		if s.Dataset != "" {
			shownOn[s.Dataset] = append(shownOn[s.Dataset], s.Title)
		}
	}

	var b strings.Builder
	fmt.Fprintln(&b, "| Dataset | Content | Screens |")
	fmt.Fprintln(&b, "|:---|:---|:---|")
	for name, raw := range w.Datasets.All() {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", name, describe(raw), strings.Join(shownOn[name], ", "))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// describe summarizes the shape of a dataset.
func describe(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "invalid"
	}
	switch v := v.(type) {
	case []any:
		return fmt.Sprintf("list of %d", len(v))
	case map[string]any:
		return fmt.Sprintf("object with %d fields", len(v))
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// importCmd imports a JSON file as a dataset.
type importCmd struct {
	name      string
	overwrite bool
	ledger    bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a JSON file as a dataset" }
func (*importCmd) Usage() string {
	return `mm import -name <dataset> [-overwrite] [-ledger] <file.json | ->

  Reads any JSON value from a file (or stdin with '-') and stores it in the
  profile under the given name.

  With -ledger the file must be a list of ledger entries: months and balances
  are recomputed from contributions and growth rates.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Dataset name (defaults to the file name)")
	f.BoolVar(&c.overwrite, "overwrite", false, "Replace an existing dataset")
	f.BoolVar(&c.ledger, "ledger", false, "Import the file as a ledger")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import requires exactly one file argument.")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	name := c.name
	if name == "" {
		if path == "-" {
			fmt.Fprintln(os.Stderr, "Error: -name is required when reading from stdin.")
			return subcommands.ExitUsageError
		}
		name = strings.TrimSuffix(baseName(path), ".json")
	}

	var value any
	if c.ledger {
		l, err := readLedger(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		value = l.Export()
	} else {
		data, err := readInput(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		value = json.RawMessage(data)
	}

	status := updateWorkspace(func(w *moneymetrics.Workspace) error {
		return w.Datasets.Put(name, value, c.overwrite)
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Imported dataset %q from %s\n", name, path)
	}
	return status
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("cannot read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}
	return data, nil
}

func readLedger(path string) (*moneymetrics.Ledger, error) {
	if path == "-" {
		return moneymetrics.DecodeLedger(os.Stdin)
	}
	return moneymetrics.LoadLedger(path)
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// exportCmd writes a dataset to a JSON file.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a dataset as a JSON file" }
func (*exportCmd) Usage() string {
	return `mm export [-o <file.json>] <dataset>

  Writes a dataset as indented JSON to a file, or to stdout by default.
  Ledger datasets are recomputed before being written.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, stdout if empty")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: export requires a dataset name.")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	w, err := DecodeWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open workspace: %v\n", err)
		return subcommands.ExitFailure
	}
	raw := w.Datasets.Raw(name)
	if raw == nil {
		fmt.Fprintf(os.Stderr, "Error: dataset %q not found.\n", name)
		return subcommands.ExitFailure
	}

	// Ledgers are written through the ledger codec, everything else as is.
	if moneymetrics.IsLedger(raw) {
		l, err := w.Ledger(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.output != "" {
			err = moneymetrics.SaveLedger(c.output, l)
		} else {
			err = moneymetrics.EncodeLedger(os.Stdout, l)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	data = append(data, '\n')
	if c.output == "" {
		os.Stdout.Write(data)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot write %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// rmCmd deletes datasets.
type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete datasets" }
func (*rmCmd) Usage() string {
	return `mm rm <dataset>...

  Deletes datasets from the profile. Unknown datasets are ignored. Screens
  showing a deleted dataset keep its name and show no data.
`
}

func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return updateWorkspace(func(w *moneymetrics.Workspace) error {
		for _, name := range f.Args() {
			w.Datasets.Delete(name)
		}
		return nil
	})
}

// queryCmd evaluates a jsonpath expression on a dataset.
type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query a dataset with a jsonpath expression" }
func (*queryCmd) Usage() string {
	return `mm query <dataset> <jsonpath>

  Evaluates a jsonpath expression on a dataset and prints the result as JSON.

Usage Examples:
$ mm query 401k '$[*].balance'
$ mm query 401k '$[?(@.month > 12)].contribution'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: query requires a dataset name and an expression.")
		return subcommands.ExitUsageError
	}
	w, err := DecodeWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open workspace: %v\n", err)
		return subcommands.ExitFailure
	}
	raw := w.Datasets.Raw(f.Arg(0))
	if raw == nil {
		fmt.Fprintf(os.Stderr, "Error: dataset %q not found.\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	res, err := renderer.Query(ctx, raw, f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(data))
	return subcommands.ExitSuccess
}
