// Package cmd implements the CLI application to manage money metrics profiles.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/moneymetrics"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Environment variables used as default values for the global flags, and
// passed to extensions.
const (
	EnvProfileFile = "MM_PROFILE_FILE"
	EnvCurrency    = "MM_CURRENCY"
	EnvVerbose     = "MM_VERBOSE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var profileFile = flag.String("profile", envOr(EnvProfileFile, "profile.json"), "Path to the profile file (JSON format)")
var currency = flag.String("currency", envOr(EnvCurrency, "USD"), "Currency used to display ledger amounts")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", envBool(EnvVerbose), "Verbose output")

// Commands returns all the subcommands, indexed by group.
func Commands() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"datasets": {
			&datasetsCmd{},
			&importCmd{},
			&exportCmd{},
			&rmCmd{},
			&queryCmd{},
		},
		"ledger": {
			&planCmd{},
			&appendCmd{},
			&modifyCmd{},
			&deleteMonthCmd{},
		},
		"screens": {
			&screensCmd{},
			&screenAddCmd{},
			&screenRmCmd{},
			&renameCmd{},
			&attachCmd{},
			&detachCmd{},
			&toggleCmd{},
			&seriesCmd{},
		},
		"views": {
			&showCmd{},
			&publishCmd{},
		},
		"help": {
			&topicCmd{},
			&fmtCmd{},
		},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands() {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}

// DecodeWorkspace opens the workspace saved in the profile file.
// A missing profile file is an empty workspace.
func DecodeWorkspace() (*moneymetrics.Workspace, error) {
	p, err := moneymetrics.LoadProfile(*profileFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", *profileFile).Msg("profile does not exist, starting from an empty workspace")
		return moneymetrics.NewWorkspace(), nil
	}
	if err != nil {
		return nil, err
	}
	return moneymetrics.OpenWorkspace(p)
}

// EncodeWorkspace saves the workspace into the profile file.
func EncodeWorkspace(w *moneymetrics.Workspace) error {
	return w.Profile().Save(*profileFile)
}

// updateWorkspace opens the workspace, applies change and saves it back.
func updateWorkspace(change func(w *moneymetrics.Workspace) error) subcommands.ExitStatus {
	w, err := DecodeWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open workspace: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := change(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeWorkspace(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save workspace: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseDecimal parses a numeric flag value.
func parseDecimal(flagName, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid -%s %q: %w", flagName, value, err)
	}
	return d, nil
}

// printMarkdown renders markdown for the terminal, or prints it as is if it
// cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		log.Debug().Err(err).Msg("cannot create markdown renderer")
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("cannot render markdown")
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
