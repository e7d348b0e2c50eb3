package moneymetrics

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func titles(w *Workspace) []string {
	var list []string
	for s := range w.Screens() {
		list = append(list, s.Title)
	}
	return list
}

func TestWorkspace_DefaultTitles(t *testing.T) {
	w := NewWorkspace()
	for range 3 {
		if _, err := w.AddScreen(""); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"Graph 1", "Graph 2", "Graph 3"}, titles(w)); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}

	// Each workspace counts on its own.
	other := NewWorkspace()
	s, _ := other.AddScreen("")
	if s.Title != "Graph 1" {
		t.Errorf("new workspace first title = %q, want %q", s.Title, "Graph 1")
	}

	// Titles already taken are skipped.
	if _, err := other.AddScreen("Graph 2"); err != nil {
		t.Fatal(err)
	}
	s, _ = other.AddScreen("")
	if s.Title != "Graph 3" {
		t.Errorf("next title = %q, want %q", s.Title, "Graph 3")
	}

	if _, err := other.AddScreen("Graph 3"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("AddScreen(duplicate) error = %v, want ErrDuplicateName", err)
	}
}

func TestWorkspace_Screens(t *testing.T) {
	w := NewWorkspace()
	if err := w.Datasets.Put("401k", []Entry{}, false); err != nil {
		t.Fatal(err)
	}
	if _, err := w.AddScreen("main"); err != nil {
		t.Fatal(err)
	}

	if err := w.Attach("main", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Attach(missing dataset) error = %v, want ErrNotFound", err)
	}
	if err := w.Attach("main", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Attach(empty dataset) error = %v, want ErrNotFound", err)
	}
	if err := w.Attach("nope", "401k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Attach(missing screen) error = %v, want ErrNotFound", err)
	}
	if err := w.Attach("main", "401k"); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if v, err := w.ToggleView("main"); err != nil || v != TableView {
		t.Errorf("ToggleView() = %v, %v; want table", v, err)
	}
	if err := w.AddSeries("main", "contribution"); err != nil {
		t.Fatal(err)
	}
	if err := w.AddSeries("main", "contribution"); err != nil {
		t.Fatal(err)
	}
	if err := w.RemoveSeries("main", "balance"); err != nil {
		t.Fatal(err)
	}
	if err := w.RenameScreen("main", "401(k)"); err != nil {
		t.Fatalf("RenameScreen() error = %v", err)
	}

	got, ok := w.Screen("401(k)")
	if !ok {
		t.Fatal("renamed screen not found")
	}
	want := Screen{Title: "401(k)", Dataset: "401k", View: TableView, Series: []string{"contribution"}}
	if !got.Equal(want) {
		t.Errorf("screen mismatch\n%s", cmp.Diff(want, got))
	}

	// Screens are copies.
	got.Series[0] = "balance"
	if again, _ := w.Screen("401(k)"); again.Series[0] != "contribution" {
		t.Errorf("Screen() shares memory with the workspace")
	}

	if _, err := w.AddScreen("other"); err != nil {
		t.Fatal(err)
	}
	if err := w.RenameScreen("other", "401(k)"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("RenameScreen(clash) error = %v, want ErrDuplicateName", err)
	}
	if err := w.Detach("401(k)"); err != nil {
		t.Fatal(err)
	}
	if s, _ := w.Screen("401(k)"); s.Dataset != "" {
		t.Errorf("Detach() left dataset %q", s.Dataset)
	}
	if err := w.RemoveScreen("401(k)"); err != nil {
		t.Fatal(err)
	}
	if err := w.RemoveScreen("401(k)"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveScreen(twice) error = %v, want ErrNotFound", err)
	}
	if diff := cmp.Diff([]string{"other"}, titles(w)); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkspace_Ledger(t *testing.T) {
	w := NewWorkspace()
	plan, err := NewPlan(2, D(100), D(0.01))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.PutLedger("401k", plan, false); err != nil {
		t.Fatal(err)
	}
	if err := w.PutLedger("401k", plan, false); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("PutLedger(duplicate) error = %v, want ErrDuplicateName", err)
	}

	l, err := w.Ledger("401k")
	if err != nil {
		t.Fatalf("Ledger() error = %v", err)
	}
	if diff := cmp.Diff(plan.Export(), l.Export()); diff != "" {
		t.Errorf("Ledger() mismatch (-want +got):\n%s", diff)
	}

	if _, err := w.Ledger("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Ledger(missing) error = %v, want ErrNotFound", err)
	}
	if err := w.Datasets.Put("numbers", []int{1, 2}, false); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Ledger("numbers"); !errors.Is(err, ErrParse) {
		t.Errorf("Ledger(numbers) error = %v, want ErrParse", err)
	}

	tagged := json.RawMessage(`[{"month":1,"contribution":100,"growth_rate":0.01,"balance":101,"note":"bonus"}]`)
	if err := w.Datasets.Put("tagged", tagged, false); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Ledger("tagged"); !errors.Is(err, ErrParse) {
		t.Errorf("Ledger(tagged) error = %v, want ErrParse", err)
	}

	if err := w.Datasets.Put("empty", []Entry{}, false); err != nil {
		t.Fatal(err)
	}
	if l, err := w.Ledger("empty"); err != nil || l.Len() != 0 {
		t.Errorf("Ledger(empty) = %v, %v, want an empty ledger", l, err)
	}
}

func TestWorkspace_Profile(t *testing.T) {
	w := NewWorkspace()
	plan, err := NewPlan(1, D(100), D(0.01))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.PutLedger("401k", plan, false); err != nil {
		t.Fatal(err)
	}
	if err := w.Datasets.Put("x", []int{1, 2, 3}, false); err != nil {
		t.Fatal(err)
	}
	if _, err := w.AddScreen("G1"); err != nil {
		t.Fatal(err)
	}
	if err := w.Attach("G1", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.AddScreen(""); err != nil {
		t.Fatal(err)
	}

	p := w.Profile()
	want := &Profile{
		Version: ProfileVersion,
		Datasets: map[string]json.RawMessage{
			"401k": json.RawMessage(`[{"month":1,"contribution":100,"growth_rate":0.01,"balance":101}]`),
			"x":    json.RawMessage(`[1,2,3]`),
		},
		Screens: []Screen{{Title: "G1", Dataset: "x"}, {Title: "Graph 1"}},
	}
	if !p.Equal(want) {
		t.Fatalf("Profile() mismatch\n%s", cmp.Diff(want, p))
	}

	path := filepath.Join(t.TempDir(), "profile.json")
	if err := p.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := OpenWorkspace(loaded)
	if err != nil {
		t.Fatalf("OpenWorkspace() error = %v", err)
	}
	if !restored.Profile().Equal(p) {
		t.Errorf("restored workspace differs\n%s", cmp.Diff(p, restored.Profile()))
	}
	if !slices.Equal(restored.Datasets.Names(), []string{"401k", "x"}) {
		t.Errorf("restored datasets = %v", restored.Datasets.Names())
	}
}

func TestOpenWorkspace_DanglingReference(t *testing.T) {
	p := NewProfile()
	p.Screens = []Screen{{Title: "Graph 1", Dataset: "gone"}}

	w, err := OpenWorkspace(p)
	if err != nil {
		t.Fatalf("OpenWorkspace() error = %v", err)
	}
	s, ok := w.Screen("Graph 1")
	if !ok || s.Dataset != "gone" {
		t.Errorf("Screen() = %+v, %v; want the dangling reference kept", s, ok)
	}
	// The counter skips restored titles.
	next, _ := w.AddScreen("")
	if next.Title != "Graph 2" {
		t.Errorf("AddScreen() title = %q, want %q", next.Title, "Graph 2")
	}
}

func TestOpenWorkspace_EmptyDatasetName(t *testing.T) {
	p := NewProfile()
	p.Datasets[""] = json.RawMessage(`[1]`)
	if _, err := OpenWorkspace(p); !errors.Is(err, ErrInvalidName) {
		t.Errorf("OpenWorkspace() error = %v, want ErrInvalidName", err)
	}
}
