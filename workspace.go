package moneymetrics

import (
	"fmt"
	"iter"
	"slices"
)

// Workspace is the state of an interactive session: the datasets and the
// list of open screens.
type Workspace struct {
	Datasets *Store

	screens []Screen
	counter int // last number used for a default screen title
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{Datasets: NewStore()}
}

// OpenWorkspace restores a workspace from a profile.
//
// Screens are restored in order, including those attached to a dataset that
// the profile does not contain.
func OpenWorkspace(p *Profile) (*Workspace, error) {
	w := NewWorkspace()
	for name, raw := range p.Datasets {
		if err := w.Datasets.Put(name, raw, false); err != nil {
			return nil, fmt.Errorf("cannot restore workspace: %w", err)
		}
	}
	for _, s := range p.Screens {
		w.screens = append(w.screens, s.clone())
	}
	return w, nil
}

// Profile returns a snapshot of the workspace.
func (w *Workspace) Profile() *Profile {
	p := NewProfile()
	for name, raw := range w.Datasets.All() {
		p.Datasets[name] = raw
	}
	for _, s := range w.screens {
		p.Screens = append(p.Screens, s.clone())
	}
	return p
}

// Screens iterates over the open screens, in opening order.
func (w *Workspace) Screens() iter.Seq[Screen] {
	return func(yield func(Screen) bool) {
		for _, s := range w.screens {
			if !yield(s.clone()) {
				return
			}
		}
	}
}

// Screen returns the screen with this title.
func (w *Workspace) Screen(title string) (Screen, bool) {
	i := w.find(title)
	if i < 0 {
		return Screen{}, false
	}
	return w.screens[i].clone(), true
}

// AddScreen opens a new screen with no dataset.
//
// An empty title is replaced by the next free "Graph N" title.
func (w *Workspace) AddScreen(title string) (Screen, error) {
	if title == "" {
		title = w.nextTitle()
	}
	if w.find(title) >= 0 {
		return Screen{}, fmt.Errorf("cannot add screen %q: %w", title, ErrDuplicateName)
	}
	s := Screen{Title: title}
	w.screens = append(w.screens, s)
	return s, nil
}

// RemoveScreen closes a screen.
func (w *Workspace) RemoveScreen(title string) error {
	i, err := w.mustFind(title)
	if err != nil {
		return err
	}
	w.screens = slices.Delete(w.screens, i, i+1)
	return nil
}

// RenameScreen changes the title of a screen.
func (w *Workspace) RenameScreen(title, newTitle string) error {
	i, err := w.mustFind(title)
	if err != nil {
		return err
	}
	if newTitle == title {
		return nil
	}
	if newTitle == "" || w.find(newTitle) >= 0 {
		return fmt.Errorf("cannot rename screen %q to %q: %w", title, newTitle, ErrDuplicateName)
	}
	w.screens[i].Title = newTitle
	return nil
}

// Attach shows a dataset on a screen. The dataset must exist.
func (w *Workspace) Attach(title, dataset string) error {
	i, err := w.mustFind(title)
	if err != nil {
		return err
	}
	if !w.Datasets.Has(dataset) {
		return fmt.Errorf("cannot attach dataset %q: %w", dataset, ErrNotFound)
	}
	w.screens[i].Dataset = dataset
	return nil
}

// Detach removes the dataset from a screen.
func (w *Workspace) Detach(title string) error {
	i, err := w.mustFind(title)
	if err != nil {
		return err
	}
	w.screens[i].Dataset = ""
	return nil
}

// ToggleView switches a screen between graph and table views and returns the
// new view.
func (w *Workspace) ToggleView(title string) (View, error) {
	i, err := w.mustFind(title)
	if err != nil {
		return 0, err
	}
	if w.screens[i].View == GraphView {
		w.screens[i].View = TableView
	} else {
		w.screens[i].View = GraphView
	}
	return w.screens[i].View, nil
}

// AddSeries adds a field to the series plotted by a screen.
func (w *Workspace) AddSeries(title, field string) error {
	i, err := w.mustFind(title)
	if err != nil {
		return err
	}
	series := w.screens[i].Plotted()
	if !slices.Contains(series, field) {
		series = append(series, field)
	}
	w.screens[i].Series = series
	return nil
}

// RemoveSeries removes a field from the series plotted by a screen.
func (w *Workspace) RemoveSeries(title, field string) error {
	i, err := w.mustFind(title)
	if err != nil {
		return err
	}
	series := w.screens[i].Plotted()
	w.screens[i].Series = slices.DeleteFunc(series, func(s string) bool { return s == field })
	return nil
}

// Ledger decodes the dataset called name as a ledger.
//
// The dataset must be an empty list or satisfy IsLedger, so that records
// carrying other fields are never silently truncated to entries.
func (w *Workspace) Ledger(name string) (*Ledger, error) {
	if raw := w.Datasets.Raw(name); raw != nil && string(raw) != "[]" && !IsLedger(raw) {
		return nil, fmt.Errorf("dataset %q is not a ledger: %w", name, ErrParse)
	}
	var records []Entry
	ok, err := w.Datasets.Decode(name, &records)
	if err != nil {
		return nil, fmt.Errorf("dataset %q is not a ledger: %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("cannot find ledger %q: %w", name, ErrNotFound)
	}
	return NewLedger(records...), nil
}

// PutLedger stores the entries of a ledger as a dataset.
func (w *Workspace) PutLedger(name string, l *Ledger, overwrite bool) error {
	return w.Datasets.Put(name, l.Export(), overwrite)
}

// find returns the index of the first screen with this title, -1 if none.
func (w *Workspace) find(title string) int {
	return slices.IndexFunc(w.screens, func(s Screen) bool { return s.Title == title })
}

func (w *Workspace) mustFind(title string) (int, error) {
	i := w.find(title)
	if i < 0 {
		return -1, fmt.Errorf("cannot find screen %q: %w", title, ErrNotFound)
	}
	return i, nil
}

// nextTitle returns the next default title not used by an open screen.
func (w *Workspace) nextTitle() string {
	for {
		w.counter++
		title := fmt.Sprintf("Graph %d", w.counter)
		if w.find(title) < 0 {
			return title
		}
	}
}
