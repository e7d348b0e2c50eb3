package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// records decodes raw as a list of JSON objects.
//
// It returns false if raw is not a non-empty array of objects. keys are the
// fields of the first record, in document order.
func records(raw json.RawMessage) (rows []map[string]any, keys []string, ok bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, nil, false
	}
	keys, err := objectKeys(items[0])
	if err != nil {
		return nil, nil, false
	}
	rows = make([]map[string]any, 0, len(items))
	for _, item := range items {
		dec := json.NewDecoder(bytes.NewReader(item))
		dec.UseNumber()
		var row map[string]any
		if err := dec.Decode(&row); err != nil || row == nil {
			return nil, nil, false
		}
		rows = append(rows, row)
	}
	return rows, keys, true
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if t != json.Delim('{') {
		return nil, fmt.Errorf("not an object")
	}
	var keys []string
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return nil, err
		}
		keys = append(keys, t.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// Table renders a dataset as a markdown table.
//
// Columns are the fields of the first record. A dataset that is not a list of
// records is printed as JSON.
func Table(raw json.RawMessage) string {
	rows, keys, ok := records(raw)
	if !ok {
		return Label(raw)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "| %s |\n", strings.Join(escapeAll(keys), " | "))
	fmt.Fprintf(&b, "|%s\n", strings.Repeat(":---|", len(keys)))
	for _, row := range rows {
		cells := make([]string, len(keys))
		for i, key := range keys {
			cells[i] = escape(cell(row[key]))
		}
		fmt.Fprintf(&b, "| %s |\n", strings.Join(cells, " | "))
	}
	return b.String()
}

// Label renders any dataset as a JSON code block, or "No data" when there is
// nothing to show.
func Label(raw json.RawMessage) string {
	var out bytes.Buffer
	if len(raw) == 0 || json.Indent(&out, raw, "", "  ") != nil || out.String() == "null" || out.String() == "[]" {
		return "No data\n"
	}
	return fmt.Sprintf("```json\n%s\n```\n", out.String())
}

// cell formats a record value for a table cell.
func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return fmt.Sprint(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func escapeAll(list []string) []string {
	escaped := make([]string, len(list))
	for i, s := range list {
		escaped[i] = escape(s)
	}
	return escaped
}
