package health

import (
	"fmt"
	"sort"
	"time"

	"pet-health-record/internal/domain/records"
)

const DefaultAlertDaysThreshold = 30

// Alerts busca vacunas (next_due_date) y tratamientos (next_appointment_date)
// con vencimiento en [hoy, hoy+daysThreshold], comparando solo fechas.
// Filas de mascotas fuera del índice se ignoran.
func Alerts(ix PetIndex, vaccinations []records.Vaccination, treatments []records.Treatment, daysThreshold int, now time.Time) []PriorityAlert {
	if ix.Len() == 0 {
		return []PriorityAlert{}
	}
	if daysThreshold < 0 {
		daysThreshold = DefaultAlertDaysThreshold
	}

	today := dateOnly(now)
	limit := today.AddDate(0, 0, daysThreshold)

	out := make([]PriorityAlert, 0)

	for _, v := range vaccinations {
		pet, ok := ix.Lookup(v.PetID)
		if !ok || v.NextDueDate == nil {
			continue
		}
		due := dateOnly(*v.NextDueDate)
		if due.Before(today) || due.After(limit) {
			continue
		}
		days := ceilDays(today, due)
		out = append(out, PriorityAlert{
			ID:            "vaccination-" + v.ID,
			Type:          AlertVaccination,
			Title:         v.VaccineName + " Due",
			Description:   fmt.Sprintf("%s's %s vaccination is %s", pet.Name, v.VaccineName, dueIn(days)),
			PetID:         v.PetID,
			PetName:       pet.Name,
			DueDate:       due,
			DaysRemaining: days,
			Severity:      vaccinationSeverity(days),
			ActionLabel:   "Schedule Vaccination",
			ActionURL:     "/pets/" + v.PetID + "/vaccinations",
		})
	}

	for _, t := range treatments {
		pet, ok := ix.Lookup(t.PetID)
		if !ok || t.NextAppointmentDate == nil {
			continue
		}
		due := dateOnly(*t.NextAppointmentDate)
		if due.Before(today) || due.After(limit) {
			continue
		}
		days := ceilDays(today, due)
		out = append(out, PriorityAlert{
			ID:            "treatment-" + t.ID,
			Type:          AlertTreatment,
			Title:         t.Name + " Follow-up",
			Description:   fmt.Sprintf("%s's %s appointment is %s", pet.Name, t.Name, dueIn(days)),
			PetID:         t.PetID,
			PetName:       pet.Name,
			DueDate:       due,
			DaysRemaining: days,
			Severity:      treatmentSeverity(days),
			ActionLabel:   "View Treatment",
			ActionURL:     "/pets/" + t.PetID + "/treatments",
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysRemaining < out[j].DaysRemaining
	})
	return out
}

func vaccinationSeverity(days int) Severity {
	switch {
	case days <= 7:
		return SeverityHigh
	case days <= 14:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Los tratamientos no tienen tier "low": todo lo que supera 7 días es medium.
func treatmentSeverity(days int) Severity {
	if days <= 7 {
		return SeverityHigh
	}
	return SeverityMedium
}

func dueIn(days int) string {
	switch days {
	case 0:
		return "due today"
	case 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}
