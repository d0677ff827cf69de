package health

import (
	"sort"
	"time"

	"pet-health-record/internal/domain/records"
)

var urgencyRank = map[Urgency]int{
	UrgencyCritical: 0,
	UrgencyHigh:     1,
	UrgencyMedium:   2,
}

var urgencyColor = map[Urgency]string{
	UrgencyCritical: "#DC2626",
	UrgencyHigh:     "#F59E0B",
	UrgencyMedium:   "#3B82F6",
}

// TimeUrgency: pasado o a menos de 2h => critical; menos de 4h => high.
func TimeUrgency(at time.Time, now time.Time) Urgency {
	left := at.Sub(now)
	switch {
	case left < 0:
		return UrgencyCritical
	case left < 2*time.Hour:
		return UrgencyCritical
	case left < 4*time.Hour:
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// DailyPriorities junta las dosis de hoy (tratamientos activos), las visitas
// de hoy y las alertas high con umbral de 1 día (siempre critical).
func DailyPriorities(
	ix PetIndex,
	vaccinations []records.Vaccination,
	treatments []records.Treatment,
	visits []records.MedicalVisit,
	now time.Time,
) []Priority {
	if ix.Len() == 0 {
		return []Priority{}
	}

	out := make([]Priority, 0)

	for _, t := range treatments {
		if !t.IsActive || t.NextDoseDate == nil || !isToday(*t.NextDoseDate, t.NextDoseDateOnly, now) {
			continue
		}
		if _, ok := ix.Lookup(t.PetID); !ok {
			continue
		}
		due := *t.NextDoseDate
		u := TimeUrgency(due, now)
		desc := ix.Name(t.PetID) + "'s " + t.Name + " dose"
		if t.Dosage != "" {
			desc += " (" + t.Dosage + ")"
		}
		out = append(out, Priority{
			ID:          "medication-" + t.ID,
			Type:        PriorityMedication,
			PetID:       t.PetID,
			PetName:     ix.Name(t.PetID),
			Title:       "Give " + t.Name,
			Description: desc,
			DueTime:     &due,
			Urgency:     u,
			Icon:        "pill",
			Color:       urgencyColor[u],
		})
	}

	for _, v := range visits {
		if v.VisitDate == nil || !isToday(*v.VisitDate, v.VisitDateOnly, now) {
			continue
		}
		if _, ok := ix.Lookup(v.PetID); !ok {
			continue
		}
		due := *v.VisitDate
		u := TimeUrgency(due, now)
		title := v.Reason
		if title == "" {
			title = "Vet Visit"
		}
		desc := ix.Name(v.PetID) + " has a vet appointment today"
		if v.ClinicName != "" {
			desc += " at " + v.ClinicName
		}
		out = append(out, Priority{
			ID:          "appointment-" + v.ID,
			Type:        PriorityAppointment,
			PetID:       v.PetID,
			PetName:     ix.Name(v.PetID),
			Title:       title,
			Description: desc,
			DueTime:     &due,
			Urgency:     u,
			Icon:        "calendar",
			Color:       urgencyColor[u],
		})
	}

	for _, a := range Alerts(ix, vaccinations, treatments, 1, now) {
		if a.Severity != SeverityHigh {
			continue
		}
		due := a.DueDate
		out = append(out, Priority{
			ID:          "alert-" + a.ID,
			Type:        PriorityAlertItem,
			PetID:       a.PetID,
			PetName:     a.PetName,
			Title:       a.Title,
			Description: a.Description,
			DueTime:     &due,
			Urgency:     UrgencyCritical,
			Icon:        "alert",
			Color:       urgencyColor[UrgencyCritical],
		})
	}

	sortPriorities(out)
	return out
}

// sortPriorities ordena por urgencia (estable) y, dentro de cada urgencia,
// ordena los ítems con hora entre las posiciones que ya ocupaban. Los ítems
// sin hora no se mueven de su lugar relativo.
func sortPriorities(items []Priority) {
	sort.SliceStable(items, func(i, j int) bool {
		return urgencyRank[items[i].Urgency] < urgencyRank[items[j].Urgency]
	})

	for start := 0; start < len(items); {
		end := start
		for end < len(items) && items[end].Urgency == items[start].Urgency {
			end++
		}

		slots := make([]int, 0)
		timed := make([]Priority, 0)
		for i := start; i < end; i++ {
			if items[i].DueTime != nil {
				slots = append(slots, i)
				timed = append(timed, items[i])
			}
		}
		sort.SliceStable(timed, func(i, j int) bool {
			return timed[i].DueTime.Before(*timed[j].DueTime)
		})
		for k, idx := range slots {
			items[idx] = timed[k]
		}

		start = end
	}
}
