package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

func TestFmt(t *testing.T) {
	path := withProfile(t)
	profile := `{"datasets":{"401k":[{"month":7,"contribution":100,"growth_rate":0.01,"balance":1},{"month":9,"contribution":100,"growth_rate":0.01,"balance":2}],"n":[3, 1]},"screens":[{"title":"A","dataset":"gone"}]}`
	if err := os.WriteFile(path, []byte(profile), 0644); err != nil {
		t.Fatal(err)
	}

	mustRun(t, &fmtCmd{})

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "version": 1,
  "datasets": {
    "401k": [
      {
        "month": 1,
        "contribution": 100,
        "growth_rate": 0.01,
        "balance": 101
      },
      {
        "month": 2,
        "contribution": 100,
        "growth_rate": 0.01,
        "balance": 203.01
      }
    ],
    "n": [
      3,
      1
    ]
  },
  "screens": [
    {
      "title": "A",
      "dataset": "gone"
    }
  ]
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("fmt mismatch (-want +got):\n%s", diff)
	}
}

func TestFmt_KeepsOtherDatasets(t *testing.T) {
	path := withProfile(t)
	profile := `{"datasets":{"empty":null,"none":[],"tagged":[{"month":1,"contribution":100,"growth_rate":0.01,"balance":5,"note":"bonus"}]}}`
	if err := os.WriteFile(path, []byte(profile), 0644); err != nil {
		t.Fatal(err)
	}

	mustRun(t, &fmtCmd{})

	w := openWorkspace(t)
	want := map[string]string{
		"empty":  `null`,
		"none":   `[]`,
		"tagged": `[{"month":1,"contribution":100,"growth_rate":0.01,"balance":5,"note":"bonus"}]`,
	}
	for name, raw := range want {
		if diff := cmp.Diff(raw, string(w.Datasets.Raw(name))); diff != "" {
			t.Errorf("dataset %q mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestExport_KeepsExtraFields(t *testing.T) {
	withProfile(t)
	data := filepath.Join(t.TempDir(), "tagged.json")
	if err := os.WriteFile(data, []byte(`[{"month":1,"contribution":100,"growth_rate":0.01,"balance":5,"note":"bonus"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, &importCmd{}, data)

	out := filepath.Join(t.TempDir(), "out.json")
	mustRun(t, &exportCmd{}, "-o", out, "tagged")
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `"note": "bonus"`) || !strings.Contains(string(got), `"balance": 5`) {
		t.Errorf("export rewrote a generic dataset:\n%s", got)
	}
	if got := run(t, &appendCmd{}, "-d", "tagged", "-c", "1"); got != subcommands.ExitFailure {
		t.Errorf("append to a generic dataset = %v, want ExitFailure", got)
	}
}
