package health

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pet-health-record/internal/domain/records"
)

const (
	birthdayInsightWindowDays = 60
	weightInsightPercent      = 10.0
)

var insightRank = map[InsightSeverity]int{
	InsightCritical: 0,
	InsightWarning:  1,
	InsightInfo:     2,
}

type insightPalette struct{ fg, bg string }

var insightColors = map[InsightSeverity]insightPalette{
	InsightCritical: {fg: "#DC2626", bg: "#FEE2E2"},
	InsightWarning:  {fg: "#D97706", bg: "#FEF3C7"},
	InsightInfo:     {fg: "#2563EB", bg: "#DBEAFE"},
}

// GenerateInsights aplica un set fijo y ordenado de reglas. Cada regla agrega
// cero o una tarjeta (cumpleaños: una por mascota que califique).
func GenerateInsights(
	pets []records.Pet,
	vaccinations []records.Vaccination,
	treatments []records.Treatment,
	m HealthMetrics,
	now time.Time,
) []Insight {
	if len(pets) == 0 {
		return []Insight{}
	}

	ix := NewPetIndex(pets)
	out := make([]Insight, 0)
	add := func(in Insight) {
		c := insightColors[in.Severity]
		in.Color = c.fg
		in.BackgroundColor = c.bg
		in.CreatedAt = now
		in.Dismissible = in.Severity != InsightCritical
		if in.ActionType == "" {
			in.ActionType = "navigate"
		}
		out = append(out, in)
	}

	// 1 y 2 son excluyentes: si hay vencidas no se avisa de las próximas.
	if m.Vaccinations.Overdue > 0 {
		add(Insight{
			ID:          "vaccinations-overdue",
			Type:        "vaccination",
			Severity:    InsightCritical,
			Icon:        "alert-circle",
			Title:       "Vaccinations Overdue",
			Description: overdueDescription(ix, vaccinations, m.Vaccinations.Overdue, now),
			ActionLabel: "View Vaccinations",
			ActionData:  map[string]string{"route": "/vaccinations"},
		})
	} else if m.Vaccinations.DueSoon > 0 {
		add(Insight{
			ID:          "vaccinations-due-soon",
			Type:        "vaccination",
			Severity:    InsightWarning,
			Icon:        "shield",
			Title:       "Vaccinations Due Soon",
			Description: fmt.Sprintf("%s due in the next 30 days", plural(m.Vaccinations.DueSoon, "vaccination")),
			ActionLabel: "Schedule Now",
			ActionData:  map[string]string{"route": "/vaccinations"},
		})
	}

	today := dateOnly(now)
	for _, p := range pets {
		if p.DateOfBirth == nil {
			continue
		}
		next, age := nextBirthday(*p.DateOfBirth, today)
		days := floorDays(today, next)
		if age <= 0 || days < 0 || days > birthdayInsightWindowDays {
			continue
		}
		when := fmt.Sprintf("in %d days", days)
		switch days {
		case 0:
			when = "today"
		case 1:
			when = "tomorrow"
		}
		add(Insight{
			ID:          "birthday-" + p.ID,
			Type:        "birthday",
			Severity:    InsightInfo,
			Icon:        "cake",
			Title:       "Pet's Birthday",
			Description: fmt.Sprintf("%s turns %d %s", p.Name, age, when),
			ActionLabel: "View Profile",
			ActionData:  map[string]string{"route": "/pets/" + p.ID},
			PetID:       p.ID,
			PetName:     p.Name,
		})
	}

	if m.Weight.ChangePercentage > weightInsightPercent {
		switch m.Weight.Trend {
		case TrendGaining:
			add(weightInsight("weight-gain", "Weight Gain Detected", "gained", m.Weight))
		case TrendLosing:
			add(weightInsight("weight-loss", "Weight Loss Detected", "lost", m.Weight))
		}
	}

	if m.Checkups.IsOverdue {
		add(Insight{
			ID:          "checkup-overdue",
			Type:        "checkup",
			Severity:    InsightWarning,
			Icon:        "stethoscope",
			Title:       "Annual Checkup Overdue",
			Description: fmt.Sprintf("Last vet visit was %d days ago. Time to schedule a checkup.", m.Checkups.DaysSinceLastVisit),
			ActionLabel: "Book Appointment",
			ActionData:  map[string]string{"route": "/visits/new"},
		})
	}

	if m.Medications.Active > 0 {
		add(Insight{
			ID:          "active-medications",
			Type:        "medication",
			Severity:    InsightInfo,
			Icon:        "pill",
			Title:       "Active Medications",
			Description: medicationDescription(ix, treatments, m.Medications.Active),
			ActionLabel: "View Medications",
			ActionData:  map[string]string{"route": "/treatments"},
		})
	}

	if month := now.Month(); month >= time.April && month <= time.October {
		add(Insight{
			ID:          "seasonal-flea-tick",
			Type:        "seasonal",
			Severity:    InsightInfo,
			Icon:        "sun",
			Title:       "Flea & Tick Season",
			Description: "Warmer months bring more fleas and ticks. Keep preventive treatments up to date.",
			ActionLabel: "Add Treatment",
			ActionData:  map[string]string{"route": "/treatments/new"},
		})
	}

	// createdAt es el mismo para todas: el desempate queda en orden de inserción.
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := insightRank[out[i].Severity], insightRank[out[j].Severity]
		if ri != rj {
			return ri < rj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// nextBirthday es la próxima ocurrencia (hoy incluido) y la edad que cumple.
func nextBirthday(dob, today time.Time) (time.Time, int) {
	next := birthdayIn(dob, today.Year())
	if next.Before(today) {
		next = birthdayIn(dob, today.Year()+1)
	}
	return next, next.Year() - dob.Year()
}

func weightInsight(id, title, verb string, w WeightMetrics) Insight {
	return Insight{
		ID:          id,
		Type:        "weight",
		Severity:    InsightWarning,
		Icon:        "scale",
		Title:       title,
		Description: fmt.Sprintf("Recent entries show your pet %s %.1f %s (%.1f%%). Consider checking with your vet.", verb, w.Change, w.Unit, w.ChangePercentage),
		ActionLabel: "View Weight History",
		ActionData:  map[string]string{"route": "/weight"},
	}
}

func overdueDescription(ix PetIndex, vaccinations []records.Vaccination, overdue int, now time.Time) string {
	today := dateOnly(now)
	names := make([]string, 0, 3)
	for _, v := range vaccinations {
		if v.NextDueDate == nil || !dateOnly(*v.NextDueDate).Before(today) {
			continue
		}
		if len(names) == 3 {
			break
		}
		names = append(names, fmt.Sprintf("%s (%s)", v.VaccineName, ix.Name(v.PetID)))
	}
	desc := plural(overdue, "vaccination") + " overdue"
	if len(names) > 0 {
		desc += ": " + strings.Join(names, ", ")
	}
	return desc
}

func medicationDescription(ix PetIndex, treatments []records.Treatment, active int) string {
	petNames := make([]string, 0)
	seen := map[string]struct{}{}
	for _, t := range treatments {
		if !t.IsActive || t.Category != records.CategoryMedication {
			continue
		}
		if _, ok := seen[t.PetID]; ok {
			continue
		}
		seen[t.PetID] = struct{}{}
		petNames = append(petNames, ix.Name(t.PetID))
	}
	desc := plural(active, "active medication")
	if len(petNames) > 0 {
		desc += " for " + strings.Join(petNames, ", ")
	}
	return desc + ". Remember to give doses on time."
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
