package moneymetrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeLedger writes the ledger entries as an indented JSON array.
func EncodeLedger(w io.Writer, l *Ledger) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l.Export()); err != nil {
		return fmt.Errorf("cannot encode ledger: %w: %w", ErrIO, err)
	}
	return nil
}

// ledgerFields are the JSON fields of an Entry.
var ledgerFields = []string{"month", "contribution", "growth_rate", "balance"}

// IsLedger reports whether raw is the JSON form of a non empty ledger: an
// array of objects having exactly the Entry fields. Records with other
// fields belong to generic datasets and are never rewritten as entries.
func IsLedger(raw json.RawMessage) bool {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil || len(records) == 0 {
		return false
	}
	for _, r := range records {
		if len(r) != len(ledgerFields) {
			return false
		}
		for _, f := range ledgerFields {
			if _, ok := r[f]; !ok {
				return false
			}
		}
	}
	return true
}

// DecodeLedger reads a JSON array of entries.
//
// Months and balances found in the stream are ignored and recomputed.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var records []Entry
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("cannot decode ledger: %w: %w", ErrParse, err)
	}
	return NewLedger(records...), nil
}

// SaveLedger writes the ledger into a JSON file.
func SaveLedger(path string, l *Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create ledger file %q: %w: %w", path, ErrIO, err)
	}
	defer f.Close()
	if err := EncodeLedger(f, l); err != nil {
		return fmt.Errorf("cannot write ledger file %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot close ledger file %q: %w: %w", path, ErrIO, err)
	}
	log.Debug().Str("path", path).Int("months", l.Len()).Msg("save-ledger")
	return nil
}

// LoadLedger reads a ledger from a JSON file.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w: %w", path, ErrIO, err)
	}
	defer f.Close()
	l, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger file %q: %w", path, err)
	}
	log.Debug().Str("path", path).Int("months", l.Len()).Msg("load-ledger")
	return l, nil
}
