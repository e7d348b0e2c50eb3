package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// ErrNotTabular is returned when a dataset is not a list of records.
var ErrNotTabular = errors.New("dataset is not a list of records")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// graphWidth is the number of cells used by the longest bar.
const graphWidth = 40

// selector compiles a series into a jsonpath expression evaluated on each record.
//
// A series starting with '$' is a jsonpath expression, any other series is a
// field name.
func selector(series string) (func(context.Context, any) (any, error), error) {
	path := series
	switch {
	case strings.HasPrefix(series, "$"):
	case identifier.MatchString(series):
		path = "$." + series
	default:
		path = fmt.Sprintf("$[%q]", series)
	}
	eval, err := jsonpath.New(path)
	if err != nil {
		return nil, fmt.Errorf("invalid series %q: %w", series, err)
	}
	return eval, nil
}

// number converts a record value to a float, missing or non numeric values are 0.
func number(v any) float64 {
	switch v := v.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case float64:
		return v
	case []any:
		// a jsonpath expression with wildcards yields a list, keep the first one.
		if len(v) > 0 {
			return number(v[0])
		}
	}
	return 0
}

// Graph renders each series of a dataset as a bar chart against the month.
//
// The month is read from the "month" field of each record, or is the record
// position when missing.
func Graph(ctx context.Context, raw json.RawMessage, series []string) (string, error) {
	rows, _, ok := records(raw)
	if !ok {
		return "", ErrNotTabular
	}
	if len(series) == 0 {
		return "No series selected\n", nil
	}

	months := make([]string, len(rows))
	for i, row := range rows {
		months[i] = fmt.Sprint(i + 1)
		if m, ok := row["month"].(json.Number); ok {
			months[i] = m.String()
		}
	}
	monthWidth := 0
	for _, m := range months {
		monthWidth = max(monthWidth, len(m))
	}

	var b strings.Builder
	for _, s := range series {
		eval, err := selector(s)
		if err != nil {
			return "", err
		}
		values := make([]float64, len(rows))
		peak := 0.0
		for i, row := range rows {
			v, err := eval(ctx, row)
			if err != nil {
				if ctx.Err() != nil {
					return "", ctx.Err()
				}
				continue // missing field.
			}
			values[i] = number(v)
			peak = max(peak, math.Abs(values[i]))
		}

		fmt.Fprintf(&b, "**%s**\n\n```text\n", s)
		for i, v := range values {
			fmt.Fprintf(&b, "%*s | %s %.2f\n", monthWidth, months[i], bar(v, peak), v)
		}
		fmt.Fprintf(&b, "```\n\n")
	}
	return b.String(), nil
}

// bar draws a bar proportional to |v|/peak, negative values use a lighter shade.
func bar(v, peak float64) string {
	n := 0
	if peak > 0 {
		n = int(math.Round(math.Abs(v) / peak * graphWidth))
	}
	block := "█"
	if v < 0 {
		block = "░"
	}
	return strings.Repeat(block, n) + strings.Repeat(" ", graphWidth-n)
}
