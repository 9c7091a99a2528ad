package date

import (
	"testing"
	"time"
)

func TestHistoryAppendSortsAndOverwrites(t *testing.T) {
	var h History[float64]
	h.Append(New(2021, time.January, 6), 3)
	h.Append(New(2021, time.January, 4), 1)
	h.Append(New(2021, time.January, 5), 2)
	h.Append(New(2021, time.January, 4), 10) // overwrite

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	first, v := h.First()
	if first != New(2021, time.January, 4) || v != 10 {
		t.Errorf("First() = %v %v, want 2021-01-04 10", first, v)
	}

	var prev Date
	for on := range h.Values() {
		if !prev.IsZero() && !on.After(prev) {
			t.Errorf("Values() not chronological: %v after %v", on, prev)
		}
		prev = on
	}
}

func TestHistoryValueAsOf(t *testing.T) {
	var h History[float64]
	h.Append(New(2021, time.January, 4), 100)
	h.Append(New(2021, time.January, 6), 110)

	testCases := []struct {
		name   string
		on     Date
		want   float64
		wantOk bool
	}{
		{name: "exact", on: New(2021, time.January, 4), want: 100, wantOk: true},
		{name: "gap falls back", on: New(2021, time.January, 5), want: 100, wantOk: true},
		{name: "after last", on: New(2021, time.January, 10), want: 110, wantOk: true},
		{name: "before first", on: New(2021, time.January, 1), wantOk: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := h.ValueAsOf(tc.on)
			if ok != tc.wantOk {
				t.Fatalf("ValueAsOf(%v) ok = %v, want %v", tc.on, ok, tc.wantOk)
			}
			if ok && got != tc.want {
				t.Errorf("ValueAsOf(%v) = %v, want %v", tc.on, got, tc.want)
			}
		})
	}
}

func TestHistoryEmpty(t *testing.T) {
	var h History[float64]
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
	if on, v := h.Latest(); !on.IsZero() || v != 0 {
		t.Errorf("Latest() = %v %v, want zero values", on, v)
	}
}
