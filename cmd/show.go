package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/moneymetrics"
	"github.com/etnz/moneymetrics/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// render renders the screens called titles, or all screens if titles is empty.
func render(ctx context.Context, w *moneymetrics.Workspace, titles []string) (string, error) {
	var screens []moneymetrics.Screen
	if len(titles) == 0 {
		for s := range w.Screens() {
			screens = append(screens, s)
		}
	}
	for _, title := range titles {
		s, ok := w.Screen(title)
		if !ok {
			return "", fmt.Errorf("screen %q not found", title)
		}
		screens = append(screens, s)
	}
	if len(screens) == 0 {
		return "No screens.\n", nil
	}

	var b strings.Builder
	for i, s := range screens {
		if i > 0 {
			b.WriteString("\n")
		}
		md, err := renderer.Screen(ctx, s, w.Datasets, *currency)
		if err != nil {
			return "", err
		}
		b.WriteString(md)
	}
	return b.String(), nil
}

// showCmd prints screens to the terminal.
type showCmd struct {
	raw bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display screens" }
func (*showCmd) Usage() string {
	return `mm show [-raw] [<title>...]

  Displays the given screens, or all the open screens, with their dataset as a
  graph or a table.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal styling")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := DecodeWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open workspace: %v\n", err)
		return subcommands.ExitFailure
	}
	md, err := render(ctx, w, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// publishCmd writes screens as an HTML page.
type publishCmd struct {
	output string
	title  string
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "write screens as an HTML page" }
func (*publishCmd) Usage() string {
	return `mm publish [-o <file.html>] [-title <title>] [<screen>...]

  Renders the given screens, or all the open screens, into a standalone HTML
  page.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "moneymetrics.html", "Output HTML file")
	f.StringVar(&c.title, "title", "Money Metrics", "Page title")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := DecodeWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open workspace: %v\n", err)
		return subcommands.ExitFailure
	}
	md, err := render(ctx, w, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	body, err := renderer.HTML(fmt.Sprintf("# %s\n\n%s", c.title, md))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, []byte(renderer.Page(c.title, body)), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot write %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	log.Info().Str("path", c.output).Msg("published")
	return subcommands.ExitSuccess
}
