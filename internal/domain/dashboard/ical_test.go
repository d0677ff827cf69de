package dashboard

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"pet-health-record/internal/domain/health"
)

func TestWriteICS(t *testing.T) {
	age := 4
	events := []health.CalendarEvent{
		{
			ID:       "birthday:pet-1:2024",
			PetName:  "Milo",
			Type:     health.EventTypeOther,
			Title:    "Milo's 4th Birthday",
			DueDate:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Priority: health.PriorityHigh,
			Age:      &age,
		},
		{
			ID:       "visit:m1",
			PetName:  "Luna",
			Type:     health.EventTypeVetVisit,
			Title:    "Dental, cleaning",
			DueDate:  time.Date(2024, 6, 12, 14, 30, 0, 0, time.UTC),
			Priority: health.PriorityMedium,
			Location: "Happy Paws; Main St",
			Notes:    strings.Repeat("long note ", 20),
		},
	}

	var buf bytes.Buffer
	if err := WriteICS(&buf, events, fixedNow); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Fatalf("missing calendar wrapper: %q", out)
	}
	for _, want := range []string{
		"UID:birthday:pet-1:2024@pet-health-record\r\n",
		"DTSTART;VALUE=DATE:20240315\r\n",
		"DTEND;VALUE=DATE:20240316\r\n",
		"DTSTART:20240612T143000Z\r\n",
		"SUMMARY:Luna: Dental\\, cleaning\r\n",
		"LOCATION:Happy Paws\\; Main St\r\n",
		"DTSTAMP:20240610T090000Z\r\n",
		"PRIORITY:1\r\n",
		"CATEGORIES:vet_visit\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if n := strings.Count(out, "BEGIN:VEVENT"); n != 2 {
		t.Fatalf("expected 2 events, got %d", n)
	}

	for _, line := range strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n") {
		if len(line) > icalLineLimit {
			t.Fatalf("line longer than %d octets: %q", icalLineLimit, line)
		}
	}
}

func TestFoldLine_KeepsRunesIntact(t *testing.T) {
	line := "SUMMARY:" + strings.Repeat("ñ", 60)
	folded := foldLine(line)

	if strings.ReplaceAll(strings.TrimSuffix(folded, "\r\n"), "\r\n ", "") != line {
		t.Fatalf("unfolding must give back the original line")
	}
	for _, part := range strings.Split(strings.TrimSuffix(folded, "\r\n"), "\r\n") {
		if len(part) > icalLineLimit {
			t.Fatalf("part longer than limit: %d", len(part))
		}
	}
}
