package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/moneymetrics"
)

// Screen renders a screen and its dataset.
//
// Graph screens plot their series, table screens list the records. A ledger
// shown as a table has its amounts formatted in currency. Datasets that are
// not lists of records are shown as JSON whatever the view.
func Screen(ctx context.Context, s moneymetrics.Screen, datasets *moneymetrics.Store, currency string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", s.Title)

	if s.Dataset == "" {
		b.WriteString("No data\n")
		return b.String(), nil
	}
	raw := datasets.Raw(s.Dataset)
	if raw == nil {
		fmt.Fprintf(&b, "Dataset %q not found.\n", s.Dataset)
		return b.String(), nil
	}

	switch s.View {
	case moneymetrics.TableView:
		var entries []moneymetrics.Entry
		if moneymetrics.IsLedger(raw) && json.Unmarshal(raw, &entries) == nil {
			b.WriteString(LedgerTable(entries, currency))
		} else {
			b.WriteString(Table(raw))
		}
	default:
		graph, err := Graph(ctx, raw, s.Plotted())
		if errors.Is(err, ErrNotTabular) {
			graph = Label(raw)
		} else if err != nil {
			return "", fmt.Errorf("cannot render screen %q: %w", s.Title, err)
		}
		b.WriteString(graph)
	}
	return b.String(), nil
}
