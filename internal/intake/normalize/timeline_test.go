package normalize

import (
	"testing"
	"time"
)

// Reference time for calendar arithmetic: mid March.
var timelineNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestTimelineMonthCounts(t *testing.T) {
	tests := []struct {
		in        string
		wantBand  string
		monthsOut int
	}{
		{"3 months", TimelineBand03, 3},
		{"three months", TimelineBand03, 3},
		{"in 4 months", TimelineBand36, 4},
		{"six months", TimelineBand36, 6},
		{"7 months", TimelineBand612, 7},
		{"11 months", TimelineBand612, 11},
		{"12 months", TimelineBand12Plus, 12},
		{"18 months", TimelineBand12Plus, 18},
		{"asap", TimelineBand03, 0},
		{"right away", TimelineBand03, 0},
		{"next month", TimelineBand03, 1},
		{"a year or so", TimelineBand12Plus, 12},
		{"next year", TimelineBand12Plus, 12},
		{"two years", TimelineBand12Plus, 24},
		{"end of the year", TimelineBand612, 9},
	}
	for _, tt := range tests {
		got := Timeline(tt.in, timelineNow)
		if got.Ambiguous {
			t.Fatalf("Timeline(%q) unexpectedly ambiguous", tt.in)
		}
		if got.Band != tt.wantBand {
			t.Fatalf("Timeline(%q).Band = %q, want %q", tt.in, got.Band, tt.wantBand)
		}
		if got.MonthsOut != tt.monthsOut {
			t.Fatalf("Timeline(%q).MonthsOut = %d, want %d", tt.in, got.MonthsOut, tt.monthsOut)
		}
	}
}

func TestTimelineMonthNames(t *testing.T) {
	tests := []struct {
		in        string
		wantBand  string
		monthsOut int
	}{
		{"June", TimelineBand03, 3},
		{"September", TimelineBand36, 6},
		{"December", TimelineBand612, 9},
		{"March", TimelineBand03, 0},
		{"next March", TimelineBand12Plus, 12},
		// "next <month>" always means the following year's month.
		{"next June", TimelineBand12Plus, 15},
		{"next september", TimelineBand12Plus, 18},
		// A month already behind us rolls into next year.
		{"February", TimelineBand612, 11},
		{"january", TimelineBand612, 10},
	}
	for _, tt := range tests {
		got := Timeline(tt.in, timelineNow)
		if got.Ambiguous {
			t.Fatalf("Timeline(%q) unexpectedly ambiguous", tt.in)
		}
		if got.Band != tt.wantBand {
			t.Fatalf("Timeline(%q).Band = %q, want %q", tt.in, got.Band, tt.wantBand)
		}
		if got.MonthsOut != tt.monthsOut {
			t.Fatalf("Timeline(%q).MonthsOut = %d, want %d", tt.in, got.MonthsOut, tt.monthsOut)
		}
	}
}

func TestTimelinePassedMonthPinnedToThisYearIsAmbiguous(t *testing.T) {
	got := Timeline("February this year", timelineNow)
	if !got.Ambiguous {
		t.Fatal("expected ambiguous result for a passed month pinned to this year")
	}
	if got.Band != TimelineBandUnknown {
		t.Fatalf("ambiguous result should carry no band, got %q", got.Band)
	}
}

func TestTimelineCanonicalBandsPassThrough(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0_3_months", TimelineBand03},
		{"3-6 months", TimelineBand36},
		{"6 to 12 months", TimelineBand612},
		{"12+ months", TimelineBand12Plus},
		{"over a year", TimelineBand12Plus},
	}
	for _, tt := range tests {
		got := Timeline(tt.in, timelineNow)
		if got.Band != tt.want {
			t.Fatalf("Timeline(%q).Band = %q, want %q", tt.in, got.Band, tt.want)
		}
		if got.MonthsOut != monthsOutUnknown {
			t.Fatalf("Timeline(%q).MonthsOut = %d, want %d for a canonical band", tt.in, got.MonthsOut, monthsOutUnknown)
		}
	}
}

func TestTimelineUnresolvable(t *testing.T) {
	for _, in := range []string{"", "whenever god wills it", "depends on my wife"} {
		got := Timeline(in, timelineNow)
		if got.Band != TimelineBandUnknown {
			t.Fatalf("Timeline(%q).Band = %q, want %q", in, got.Band, TimelineBandUnknown)
		}
		if got.Ambiguous {
			t.Fatalf("Timeline(%q) should be unknown, not ambiguous", in)
		}
	}
}

func TestContactTimeBands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"saturday morning", ContactBandWeekend},
		{"anytime on the weekend", ContactBandWeekend},
		{"weekday evenings", ContactBandWeekdayEvening},
		{"during the week after work", ContactBandWeekdayEvening},
		{"weekday mornings", ContactBandWeekdayMorning},
		{"weekdays", ContactBandWeekdayMorning},
		// No weekday-afternoon band; the time of day wins.
		{"weekday afternoons", ContactBandAfternoon},
		{"evenings", ContactBandEvening},
		{"after 6 pm", ContactBandEvening},
		{"around lunch", ContactBandAfternoon},
		{"early morning", ContactBandMorning},
		{"whenever", ContactBandMorning},
	}
	for _, tt := range tests {
		got := ContactTime(tt.in)
		if got.Band != tt.want {
			t.Fatalf("ContactTime(%q).Band = %q, want %q", tt.in, got.Band, tt.want)
		}
	}
}
