package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		str     string
		want    Date
		wantErr bool
	}{
		{name: "canonical", str: "2021-01-04", want: New(2021, time.January, 4)},
		{name: "permissive", str: "2021-1-4", want: New(2021, time.January, 4)},
		{name: "not a date", str: "yesterday", wantErr: true},
		{name: "ledger format rejected", str: "15-11-2020", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.str)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.str, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.str, got, tc.want)
			}
		})
	}
}

func TestParseLedger(t *testing.T) {
	testCases := []struct {
		name    string
		str     string
		want    Date
		wantErr bool
	}{
		{name: "day-month-year", str: "15-11-2020", want: New(2020, time.November, 15)},
		{name: "single digits", str: "5-1-2021", want: New(2021, time.January, 5)},
		{name: "iso rejected", str: "2020-11-15", wantErr: true},
		{name: "empty", str: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLedger(tc.str)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLedger(%q) error = %v, wantErr %v", tc.str, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParseLedger(%q) = %v, want %v", tc.str, got, tc.want)
			}
		})
	}
}

func TestSub(t *testing.T) {
	a := New(2021, time.January, 4)
	b := New(2021, time.February, 4)
	if got := b.Sub(a); got != 31 {
		t.Errorf("Sub() = %d, want 31", got)
	}
	if got := a.Sub(b); got != -31 {
		t.Errorf("Sub() = %d, want -31", got)
	}
	if got := a.Sub(a); got != 0 {
		t.Errorf("Sub() = %d, want 0", got)
	}
}

func TestAddNormalizes(t *testing.T) {
	d := New(2020, time.December, 31).Add(1)
	if want := New(2021, time.January, 1); d != want {
		t.Errorf("Add(1) = %v, want %v", d, want)
	}
}
