package engine_test

import (
	"testing"
	"time"

	"github.com/warp/leave-planner/engine"
)

// =============================================================================
// PARSING AND CANONICAL FORM
// =============================================================================

func TestParseDate_CanonicalForm(t *testing.T) {
	d, err := engine.ParseDate("2025-07-03")
	if err != nil {
		t.Fatalf("expected valid date, got error: %v", err)
	}
	if d != engine.Date("2025-07-03") {
		t.Errorf("expected 2025-07-03, got %s", d)
	}
}

func TestParseDate_RejectsNonCanonicalForms(t *testing.T) {
	for _, input := range []string{
		"2025-7-3",      // not zero-padded
		"03-07-2025",    // wrong field order
		"2025-07-03T00", // time component
		"2025-13-01",    // no such month
		"2025-02-30",    // no such day
		"",
	} {
		if _, err := engine.ParseDate(input); err == nil {
			t.Errorf("expected %q to be rejected", input)
		}
	}
}

func TestNewDate_Formats(t *testing.T) {
	if got := engine.NewDate(2025, time.July, 7); got != "2025-07-07" {
		t.Errorf("expected 2025-07-07, got %s", got)
	}
	// Single-digit month and day are zero padded.
	if got := engine.NewDate(2025, time.March, 5); got != "2025-03-05" {
		t.Errorf("expected 2025-03-05, got %s", got)
	}
}

// =============================================================================
// WEEK BOUNDARIES - Monday anchored, ISO weekday based
// =============================================================================

func TestWeekStart_MondayAnchored(t *testing.T) {
	cases := []struct {
		date engine.Date
		want engine.Date
	}{
		{"2025-07-07", "2025-07-07"}, // Monday maps to itself
		{"2025-07-08", "2025-07-07"}, // Tuesday
		{"2025-07-12", "2025-07-07"}, // Saturday
		{"2025-07-13", "2025-07-07"}, // Sunday belongs to the PRECEDING Monday's week
		{"2025-07-14", "2025-07-14"}, // next Monday starts a new week
	}
	for _, c := range cases {
		if got := c.date.WeekStart(); got != c.want {
			t.Errorf("WeekStart(%s): expected %s, got %s", c.date, c.want, got)
		}
	}
}

func TestWeekEnd_IsFollowingSunday(t *testing.T) {
	if got := engine.Date("2025-07-09").WeekEnd(); got != "2025-07-13" {
		t.Errorf("expected 2025-07-13, got %s", got)
	}
	if got := engine.Date("2025-07-13").WeekEnd(); got != "2025-07-13" {
		t.Errorf("Sunday is its own week end, got %s", got)
	}
}

func TestWeekStart_AcrossMonthBoundary(t *testing.T) {
	// July 1, 2025 is a Tuesday; its week starts on Monday June 30.
	if got := engine.Date("2025-07-01").WeekStart(); got != "2025-06-30" {
		t.Errorf("expected 2025-06-30, got %s", got)
	}
}

// =============================================================================
// MONTH BOUNDARIES
// =============================================================================

func TestMonthBounds(t *testing.T) {
	d := engine.Date("2025-07-15")
	if got := d.MonthStart(); got != "2025-07-01" {
		t.Errorf("expected 2025-07-01, got %s", got)
	}
	if got := d.MonthEnd(); got != "2025-07-31" {
		t.Errorf("expected 2025-07-31, got %s", got)
	}
}

func TestMonthEnd_February(t *testing.T) {
	if got := engine.Date("2025-02-10").MonthEnd(); got != "2025-02-28" {
		t.Errorf("expected 2025-02-28, got %s", got)
	}
	// Leap year
	if got := engine.Date("2024-02-10").MonthEnd(); got != "2024-02-29" {
		t.Errorf("expected 2024-02-29, got %s", got)
	}
}

// =============================================================================
// RANGE MEMBERSHIP - Lexicographic on the canonical form
// =============================================================================

func TestInRange_Inclusive(t *testing.T) {
	start, end := engine.Date("2025-07-03"), engine.Date("2025-08-02")

	if !start.InRange(start, end) || !end.InRange(start, end) {
		t.Error("bounds are inclusive")
	}
	if !engine.Date("2025-07-15").InRange(start, end) {
		t.Error("interior date should be in range")
	}
	if engine.Date("2025-07-02").InRange(start, end) {
		t.Error("day before start should be out of range")
	}
	if engine.Date("2025-08-03").InRange(start, end) {
		t.Error("day after end should be out of range")
	}
}

func TestAddDays(t *testing.T) {
	if got := engine.Date("2025-07-31").AddDays(1); got != "2025-08-01" {
		t.Errorf("expected 2025-08-01, got %s", got)
	}
	if got := engine.Date("2025-01-01").AddDays(-1); got != "2024-12-31" {
		t.Errorf("expected 2024-12-31, got %s", got)
	}
}

func TestDateRange_Valid(t *testing.T) {
	good := engine.DateRange{Start: "2025-07-03", End: "2025-08-02"}
	if !good.Valid() {
		t.Error("start <= end should be valid")
	}
	single := engine.DateRange{Start: "2025-07-03", End: "2025-07-03"}
	if !single.Valid() {
		t.Error("single-day window should be valid")
	}
	bad := engine.DateRange{Start: "2025-08-02", End: "2025-07-03"}
	if bad.Valid() {
		t.Error("end before start should be invalid")
	}
}
