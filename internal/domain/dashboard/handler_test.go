package dashboard

import (
	"net/http/httptest"
	"testing"
	"time"

	"pet-health-record/internal/domain/health"
)

func TestParseEventFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/dashboard/calendar?pet_ids=p1,+p2,,&types=Vaccination,grooming&from=2024-06-01&to=2024-06-30", nil)

	f, err := parseEventFilters(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(f.PetIDs) != 2 || f.PetIDs[0] != "p1" || f.PetIDs[1] != "p2" {
		t.Fatalf("unexpected pet ids %#v", f.PetIDs)
	}
	if len(f.Types) != 2 || f.Types[0] != health.EventTypeVaccination || f.Types[1] != health.EventTypeGrooming {
		t.Fatalf("unexpected types %#v", f.Types)
	}
	if !f.StartDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from %v", f.StartDate)
	}
	// "to" como fecha cubre el día entero
	if f.EndDate.Day() != 30 || f.EndDate.Hour() != 23 || f.EndDate.Minute() != 59 {
		t.Fatalf("unexpected to %v", f.EndDate)
	}
}

func TestParseEventFilters_RFC3339To(t *testing.T) {
	r := httptest.NewRequest("GET", "/dashboard/calendar?to=2024-06-30T10:00:00Z", nil)
	f, err := parseEventFilters(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.EndDate.Hour() != 10 || f.StartDate != nil {
		t.Fatalf("unexpected filters %#v", f)
	}
}

func TestParseEventFilters_Invalid(t *testing.T) {
	cases := []string{
		"types=birthday-party",
		"from=06/01/2024",
		"to=tomorrow",
		"from=2024-06-10&to=2024-06-09",
	}
	for _, q := range cases {
		if _, err := parseEventFilters(httptest.NewRequest("GET", "/dashboard/calendar?"+q, nil)); err == nil {
			t.Fatalf("%s: expected error", q)
		}
	}
}

func TestParseNonNegativeInt(t *testing.T) {
	if n, err := parseNonNegativeInt(" 7 "); err != nil || n != 7 {
		t.Fatalf("expected 7, got %d %v", n, err)
	}
	if n, err := parseNonNegativeInt(""); err != nil || n != 0 {
		t.Fatalf("expected 0 for empty, got %d %v", n, err)
	}
	for _, v := range []string{"-1", "x", "1.5"} {
		if _, err := parseNonNegativeInt(v); err == nil {
			t.Fatalf("%q: expected error", v)
		}
	}
}
