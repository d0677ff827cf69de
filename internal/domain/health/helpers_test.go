package health

import (
	"testing"
	"time"

	"pet-health-record/internal/domain/records"
)

// now fijo para todos los tests del paquete (junio => temporada de pulgas).
var testNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func datep(t *testing.T, s string) *time.Time {
	t.Helper()
	d := date(t, s)
	return &d
}

func tp(v time.Time) *time.Time { return &v }

func testPets(t *testing.T) []records.Pet {
	t.Helper()
	return []records.Pet{
		{ID: "pet-1", Name: "Milo", DateOfBirth: datep(t, "2020-03-15")},
		{ID: "pet-2", Name: "Luna"},
	}
}
