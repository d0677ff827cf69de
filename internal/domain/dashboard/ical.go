package dashboard

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"pet-health-record/internal/domain/health"
)

const icalProdID = "-//pet-health-record//dashboard calendar//EN"

// icalLineLimit es el máximo de octetos por línea antes de plegar (RFC 5545 3.1).
const icalLineLimit = 75

var icalPriority = map[health.PriorityLevel]int{
	health.PriorityHigh:   1,
	health.PriorityMedium: 5,
	health.PriorityLow:    9,
}

// WriteICS serializa la lista del calendario como un VCALENDAR.
// Los eventos a medianoche UTC se exportan como días completos (VALUE=DATE).
func WriteICS(w io.Writer, events []health.CalendarEvent, now time.Time) error {
	bw := bufio.NewWriter(w)
	stamp := now.UTC().Format("20060102T150405Z")

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + icalProdID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	for _, ev := range events {
		lines = append(lines, eventLines(ev, stamp)...)
	}
	lines = append(lines, "END:VCALENDAR")

	for _, l := range lines {
		if _, err := bw.WriteString(foldLine(l)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func eventLines(ev health.CalendarEvent, stamp string) []string {
	out := []string{
		"BEGIN:VEVENT",
		"UID:" + EscapeICalValue(ev.ID) + "@pet-health-record",
		"DTSTAMP:" + stamp,
	}

	start := ev.DueDate.UTC()
	if isMidnightUTC(start) {
		out = append(out,
			"DTSTART;VALUE=DATE:"+start.Format("20060102"),
			"DTEND;VALUE=DATE:"+start.AddDate(0, 0, 1).Format("20060102"),
		)
	} else {
		out = append(out, "DTSTART:"+start.Format("20060102T150405Z"))
	}

	summary := ev.Title
	if ev.PetName != "" {
		summary = fmt.Sprintf("%s: %s", ev.PetName, ev.Title)
	}
	out = append(out, "SUMMARY:"+EscapeICalValue(summary))

	if ev.Location != "" {
		out = append(out, "LOCATION:"+EscapeICalValue(ev.Location))
	}
	if ev.Notes != "" {
		out = append(out, "DESCRIPTION:"+EscapeICalValue(ev.Notes))
	}
	out = append(out, "CATEGORIES:"+EscapeICalValue(string(ev.Type)))
	if p, ok := icalPriority[ev.Priority]; ok {
		out = append(out, fmt.Sprintf("PRIORITY:%d", p))
	}
	if ev.Color != "" {
		out = append(out, "X-APPLE-CALENDAR-COLOR:"+ev.Color)
	}
	return append(out, "END:VEVENT")
}

// EscapeICalValue escapa un valor TEXT.
func EscapeICalValue(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// foldLine corta en icalLineLimit octetos sin partir runas UTF-8 y termina
// en CRLF. El espacio de continuación cuenta dentro del límite.
func foldLine(line string) string {
	if len(line) <= icalLineLimit {
		return line + "\r\n"
	}
	var sb strings.Builder
	width := 0
	for _, r := range line {
		n := utf8.RuneLen(r)
		if width+n > icalLineLimit {
			sb.WriteString("\r\n ")
			width = 1
		}
		sb.WriteRune(r)
		width += n
	}
	sb.WriteString("\r\n")
	return sb.String()
}

func isMidnightUTC(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
