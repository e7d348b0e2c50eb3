package moneymetrics

import (
	"encoding/json"
	"fmt"
	"slices"
)

// View defines how a screen presents its dataset.
type View int

const (
	// GraphView plots the screen series against the month.
	GraphView View = iota
	// TableView shows every record field as a column.
	TableView
)

func (v View) String() string {
	switch v {
	case GraphView:
		return "graph"
	case TableView:
		return "table"
	default:
		return "unknown"
	}
}

// ParseView parses a string into a View.
func ParseView(s string) (View, error) {
	switch s {
	case "graph", "":
		return GraphView, nil
	case "table":
		return TableView, nil
	default:
		return 0, fmt.Errorf("unknown view: %q", s)
	}
}

// DefaultSeries is the list of fields plotted by a screen that has not chosen any.
var DefaultSeries = []string{"balance"}

// Screen describes a visual screen and the dataset attached to it.
//
// Dataset is the name of a dataset, empty when none is attached. The name may
// not exist in the store, such a screen simply has no data to show.
type Screen struct {
	Title   string
	Dataset string
	View    View
	// Series are the record fields plotted in GraphView, nil means DefaultSeries.
	Series []string
}

// Plotted returns the fields plotted in graph view.
func (s Screen) Plotted() []string {
	if s.Series == nil {
		return slices.Clone(DefaultSeries)
	}
	return slices.Clone(s.Series)
}

// Equal reports whether two screens are identical.
func (s Screen) Equal(o Screen) bool {
	return s.Title == o.Title &&
		s.Dataset == o.Dataset &&
		s.View == o.View &&
		(s.Series == nil) == (o.Series == nil) &&
		slices.Equal(s.Series, o.Series)
}

// clone returns a deep copy of s.
func (s Screen) clone() Screen {
	s.Series = slices.Clone(s.Series)
	return s
}

// MarshalJSON writes title and dataset first, dataset is null when no dataset
// is attached. View and series are only written when not default.
func (s Screen) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("title", s.Title)
	if s.Dataset == "" {
		w.Append("dataset", nil)
	} else {
		w.Append("dataset", s.Dataset)
	}
	if s.View != GraphView {
		w.Append("view", s.View.String())
	}
	w.Optional("series", s.Series)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a screen descriptor, unknown fields are ignored.
func (s *Screen) UnmarshalJSON(data []byte) error {
	var js struct {
		Title   string   `json:"title"`
		Dataset *string  `json:"dataset"`
		View    string   `json:"view"`
		Series  []string `json:"series"`
	}
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	view, err := ParseView(js.View)
	if err != nil {
		return fmt.Errorf("invalid screen %q: %w", js.Title, err)
	}
	*s = Screen{
		Title:  js.Title,
		View:   view,
		Series: js.Series,
	}
	if js.Dataset != nil {
		s.Dataset = *js.Dataset
	}
	return nil
}
