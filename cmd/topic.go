package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/moneymetrics/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the embedded documentation.
type topicCmd struct {
	list bool
	raw  bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `mm topic [-list] [-raw] [<topic>...]

  Shows documentation topics, "*" for all of them. Without a topic, shows the
  overview of mm.

  With -list, prints the available topics and their titles instead.
  With -raw, prints the markdown source without rendering it.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "List the available topics")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var doc string
	var err error
	if c.list {
		doc, err = topicIndex()
	} else {
		doc, err = topicDoc(f.Args())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.raw {
		fmt.Print(doc)
	} else {
		printMarkdown(doc)
	}
	return subcommands.ExitSuccess
}

// topicDoc returns the markdown of the named topics, the overview if none.
func topicDoc(names []string) (string, error) {
	if len(names) == 0 {
		return docs.Topic("readme")
	}
	known, err := docs.Topics()
	if err != nil {
		return "", err
	}
	for _, name := range names {
		if name != "*" && name != "readme" && !slices.Contains(known, name) {
			return "", fmt.Errorf("unknown topic %q, available topics are: %s", name, strings.Join(known, ", "))
		}
	}
	return docs.Join(names...)
}

// topicIndex returns a markdown table of the topics.
func topicIndex() (string, error) {
	names, err := docs.Topics()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintln(&b, "| Topic | Title |")
	fmt.Fprintln(&b, "|:---|:---|")
	for _, name := range names {
		title, err := docs.Title(name)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "| %s | %s |\n", name, title)
	}
	return b.String(), nil
}
