package dashboard

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func series(n int) []TimePoint {
	out := make([]TimePoint, n)
	var total int64
	for i := range out {
		total += int64(i%3 + 1)
		out[i] = TimePoint{Date: fmt.Sprintf("day-%03d", i), Count: int64(i%3 + 1), Cumulative: total}
	}
	return out
}

func TestWindowKeepsTrailingEntries(t *testing.T) {
	full := series(100)
	got := Window(full, Range7d)
	if len(got) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(got))
	}
	for i, pt := range got {
		if want := full[93+i]; pt != want {
			t.Errorf("entry %d: got %+v, want %+v", i, pt, want)
		}
	}

	if got := Window(full, Range30d); len(got) != 30 || got[0] != full[70] {
		t.Fatalf("30d window wrong: %d entries starting %+v", len(got), got[0])
	}
	if got := Window(full, RangeAll); len(got) != 100 {
		t.Fatalf("all should keep every entry, got %d", len(got))
	}
	if got := Window(series(3), Range7d); len(got) != 3 {
		t.Fatalf("short series should be returned whole, got %d", len(got))
	}
	if got := Window(nil, Range7d); len(got) != 0 {
		t.Fatalf("nil series should stay empty, got %d", len(got))
	}
}

func TestParseRange(t *testing.T) {
	tests := map[string]Range{"": Range30d, "7d": Range7d, "30d": Range30d, "all": RangeAll, "90d": RangeAll}
	for in, want := range tests {
		if got := ParseRange(in); got != want {
			t.Errorf("ParseRange(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeNil(t *testing.T) {
	a := Normalize(nil)
	if a == nil {
		t.Fatal("Normalize(nil) returned nil")
	}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"properties_by_condition", "properties_by_location", "properties_over_time", "recent_activities", "fund_distribution"} {
		list, ok := m[key].([]any)
		if !ok || len(list) != 0 {
			t.Errorf("%s should be an empty list, got %v", key, m[key])
		}
	}
	if m["total_properties"] != float64(0) {
		t.Errorf("total_properties should be 0, got %v", m["total_properties"])
	}
	if !a.TotalValue.IsZero() {
		t.Errorf("total_value should be zero, got %s", a.TotalValue)
	}
}

func TestNormalizeKeepsData(t *testing.T) {
	a := &Analytics{TotalProperties: 3, PropertiesByLocation: []LocationCount{{Location: "Annex", Count: 3}}}
	Normalize(a)
	if a.TotalProperties != 3 || len(a.PropertiesByLocation) != 1 {
		t.Fatalf("existing data was touched: %+v", a)
	}
}

func TestCumulate(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2024, 1, d, h, 0, 0, 0, time.Local) }
	got := Cumulate([]time.Time{day(1, 9), day(1, 15), day(3, 8), day(4, 10), day(4, 11), day(4, 12)})
	want := []TimePoint{
		{Date: "2024-01-01", Count: 2, Cumulative: 2},
		{Date: "2024-01-03", Count: 1, Cumulative: 3},
		{Date: "2024-01-04", Count: 3, Cumulative: 6},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
	if got := Cumulate(nil); got == nil || len(got) != 0 {
		t.Fatalf("empty input should give an empty series, got %v", got)
	}
}

func TestPercent(t *testing.T) {
	var p Page
	if got := p.Percent(1, 4); got != 25 {
		t.Errorf("Percent(1,4) = %d", got)
	}
	if got := p.Percent(5, 0); got != 0 {
		t.Errorf("Percent with zero total = %d", got)
	}
}
