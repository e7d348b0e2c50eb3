package moneymetrics

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScreen_JSON(t *testing.T) {
	testCases := []struct {
		name   string
		screen Screen
		want   string
	}{
		{
			name:   "detached",
			screen: Screen{Title: "Graph 1"},
			want:   `{"title":"Graph 1","dataset":null}`,
		},
		{
			name:   "attached",
			screen: Screen{Title: "Graph 1", Dataset: "401k"},
			want:   `{"title":"Graph 1","dataset":"401k"}`,
		},
		{
			name:   "table with series",
			screen: Screen{Title: "T", Dataset: "401k", View: TableView, Series: []string{"balance", "contribution"}},
			want:   `{"title":"T","dataset":"401k","view":"table","series":["balance","contribution"]}`,
		},
		{
			name:   "no series at all",
			screen: Screen{Title: "T", Series: []string{}},
			want:   `{"title":"T","dataset":null,"series":[]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.screen)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tc.want {
				t.Errorf("Marshal() = %s, want %s", data, tc.want)
			}
			var got Screen
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !got.Equal(tc.screen) {
				t.Errorf("round trip mismatch\n%s", cmp.Diff(tc.screen, got))
			}
		})
	}
}

func TestScreen_Plotted(t *testing.T) {
	s := Screen{}
	if diff := cmp.Diff([]string{"balance"}, s.Plotted()); diff != "" {
		t.Errorf("default series mismatch (-want +got):\n%s", diff)
	}
	s.Plotted()[0] = "month"
	if DefaultSeries[0] != "balance" {
		t.Errorf("Plotted() returned the shared default")
	}
	s.Series = []string{}
	if got := s.Plotted(); len(got) != 0 {
		t.Errorf("Plotted() = %v, want none", got)
	}
}

func TestParseView(t *testing.T) {
	for _, v := range []View{GraphView, TableView} {
		got, err := ParseView(v.String())
		if err != nil || got != v {
			t.Errorf("ParseView(%q) = %v, %v", v.String(), got, err)
		}
	}
	if _, err := ParseView("pie"); err == nil {
		t.Error("ParseView(pie) did not fail")
	}
}
