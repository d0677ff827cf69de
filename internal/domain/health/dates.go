package health

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// dateOnly trunca a la fecha de calendario de t (en su propia zona),
// expresada como medianoche UTC. Así se comparan "dates" del backend
// (que llegan como medianoche UTC) contra "hoy" del usuario.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween en días fraccionales (to - from).
func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

// isToday compara fechas de calendario contra el día de now. Una fecha pura
// (columna date) vale por su fecha UTC; un timestamp se lleva a la zona de now.
func isToday(t time.Time, dateOnly bool, now time.Time) bool {
	if dateOnly {
		t = t.UTC()
	} else {
		t = t.In(now.Location())
	}
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}

// WithinRange: start/end nil = sin cota. Ambas cotas inclusivas.
func WithinRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

// ComputePriority: sin fecha => low; pasada => high; dentro de 7 días => medium.
func ComputePriority(due *time.Time, now time.Time) PriorityLevel {
	if due == nil {
		return PriorityLow
	}
	if due.Before(now) {
		return PriorityHigh
	}
	if !due.After(now.Add(7 * day)) {
		return PriorityMedium
	}
	return PriorityLow
}

// birthdayIn construye el cumpleaños en year. time.Date normaliza el 29/02
// en años no bisiestos a 01/03 (comportamiento aceptado, no se corrige).
func birthdayIn(dob time.Time, year int) time.Time {
	return time.Date(year, dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
}

func ceilDays(from, to time.Time) int {
	return int(math.Ceil(daysBetween(from, to)))
}

func floorDays(from, to time.Time) int {
	return int(math.Floor(daysBetween(from, to)))
}
