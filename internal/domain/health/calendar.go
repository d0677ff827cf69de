package health

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"pet-health-record/internal/domain/records"
)

// CalendarSources son los registros crudos para el calendario.
// Las fuentes que el filtro de tipos excluye pueden venir vacías.
type CalendarSources struct {
	Vaccinations []records.Vaccination
	Treatments   []records.Treatment
	Visits       []records.MedicalVisit
	Events       []records.Event
}

// EffectivePetIDs: filters.PetIDs si no está vacío, si no todas las mascotas visibles.
func EffectivePetIDs(pets []records.Pet, f EventFilters) []string {
	if len(f.PetIDs) > 0 {
		return f.PetIDs
	}
	return records.PetIDs(pets)
}

// IncludesType: sin filtro de tipos todo pasa.
func (f EventFilters) IncludesType(t EventType) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, ft := range f.Types {
		if ft == t {
			return true
		}
	}
	return false
}

// CalendarEvents une vacunas, tratamientos activos, visitas, eventos genéricos
// y cumpleaños sintéticos en una lista ordenada asc por DueDate.
func CalendarEvents(pets []records.Pet, src CalendarSources, f EventFilters, now time.Time) []CalendarEvent {
	effective := EffectivePetIDs(pets, f)
	if len(pets) == 0 || len(effective) == 0 {
		return []CalendarEvent{}
	}

	ix := NewPetIndex(pets)
	inSet := make(map[string]struct{}, len(effective))
	for _, id := range effective {
		inSet[id] = struct{}{}
	}
	inPets := func(petID string) bool {
		_, ok := inSet[petID]
		return ok
	}

	out := make([]CalendarEvent, 0)

	if f.IncludesType(EventTypeVaccination) {
		for _, v := range src.Vaccinations {
			if !inPets(v.PetID) {
				continue
			}
			due := v.NextDueDate
			if due == nil {
				due = v.DateGiven
			}
			if due == nil || !WithinRange(*due, f.StartDate, f.EndDate) {
				continue
			}
			out = append(out, CalendarEvent{
				ID:        "vaccination:" + v.ID,
				PetID:     v.PetID,
				PetName:   ix.Name(v.PetID),
				Type:      EventTypeVaccination,
				Title:     v.VaccineName,
				DueDate:   *due,
				Priority:  ComputePriority(v.NextDueDate, now),
				Notes:     v.Notes,
				Color:     ix.Color(v.PetID),
				RelatedID: v.ID,
			})
		}
	}

	if f.IncludesType(EventTypeTreatment) {
		for _, t := range src.Treatments {
			if !t.IsActive || !inPets(t.PetID) {
				continue
			}
			if t.StartDate != nil && WithinRange(*t.StartDate, f.StartDate, f.EndDate) {
				out = append(out, treatmentEvent(ix, t, "treatment-start:", " (Start)", *t.StartDate, now))
			}
			if t.EndDate != nil && WithinRange(*t.EndDate, f.StartDate, f.EndDate) {
				out = append(out, treatmentEvent(ix, t, "treatment-end:", " (End)", *t.EndDate, now))
			}
		}
	}

	if f.IncludesType(EventTypeVetVisit) {
		for _, m := range src.Visits {
			if !inPets(m.PetID) || m.VisitDate == nil {
				continue
			}
			if !WithinRange(*m.VisitDate, f.StartDate, f.EndDate) {
				continue
			}
			title := m.Reason
			if title == "" {
				title = "Vet Visit"
			}
			out = append(out, CalendarEvent{
				ID:        "visit:" + m.ID,
				PetID:     m.PetID,
				PetName:   ix.Name(m.PetID),
				Type:      EventTypeVetVisit,
				Title:     title,
				DueDate:   *m.VisitDate,
				Priority:  ComputePriority(m.VisitDate, now),
				Notes:     m.Notes,
				Color:     ix.Color(m.PetID),
				RelatedID: m.ID,
				Location:  m.ClinicName,
			})
		}
	}

	// Eventos genéricos: los globales (sin pet) siempre pasan el filtro de mascota.
	for _, e := range src.Events {
		if len(f.PetIDs) > 0 && e.PetID != "" && !inPets(e.PetID) {
			continue
		}
		if !f.IncludesType(EventType(e.Type)) {
			continue
		}
		if e.StartTime == nil || !WithinRange(*e.StartTime, f.StartDate, f.EndDate) {
			continue
		}
		ev := CalendarEvent{
			ID:        "event:" + e.ID,
			Type:      EventType(e.Type),
			Title:     e.Title,
			DueDate:   *e.StartTime,
			Priority:  ComputePriority(e.StartTime, now),
			Notes:     e.Description,
			Color:     SecondaryTextColor,
			RelatedID: e.ID,
			Location:  e.Location,
		}
		if e.PetID != "" {
			ev.PetID = e.PetID
			ev.PetName = ix.Name(e.PetID)
			ev.Color = ix.Color(e.PetID)
		}
		out = append(out, ev)
	}

	if f.IncludesType(EventTypeOther) {
		years := []int{now.Year() - 1, now.Year(), now.Year() + 1}
		for _, p := range pets {
			if !inPets(p.ID) {
				continue
			}
			out = append(out, Birthdays(p, years, f.StartDate, f.EndDate, ix.Color(p.ID))...)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

func treatmentEvent(ix PetIndex, t records.Treatment, idPrefix, suffix string, date time.Time, now time.Time) CalendarEvent {
	return CalendarEvent{
		ID:        idPrefix + t.ID,
		PetID:     t.PetID,
		PetName:   ix.Name(t.PetID),
		Type:      EventTypeTreatment,
		Title:     t.Name + suffix,
		DueDate:   date,
		Priority:  ComputePriority(&date, now),
		Notes:     t.Notes,
		Color:     ix.Color(t.PetID),
		RelatedID: t.ID,
	}
}

// Birthdays genera los cumpleaños de la mascota para cada año de years que
// caigan en [start, end]. Se omiten años anteriores al nacimiento.
// Es puro: mismo input, mismo output; no hay fila persistida detrás.
func Birthdays(p records.Pet, years []int, start, end *time.Time, color string) []CalendarEvent {
	if p.DateOfBirth == nil {
		return nil
	}
	dob := *p.DateOfBirth
	out := make([]CalendarEvent, 0, len(years))
	for _, year := range years {
		age := year - dob.Year()
		if age < 0 {
			continue
		}
		date := birthdayIn(dob, year)
		if !WithinRange(date, start, end) {
			continue
		}
		a := age
		out = append(out, CalendarEvent{
			ID:       fmt.Sprintf("birthday:%s:%d", p.ID, year),
			PetID:    p.ID,
			PetName:  p.Name,
			Type:     EventTypeOther,
			Title:    birthdayTitle(p.Name, age),
			DueDate:  date,
			Priority: PriorityHigh,
			Color:    color,
			Age:      &a,
		})
	}
	return out
}

func birthdayTitle(name string, age int) string {
	if age == 0 {
		return name + " was born"
	}
	return name + "'s " + ordinal(age) + " Birthday"
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
