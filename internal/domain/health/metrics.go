package health

import (
	"math"
	"sort"
	"time"

	"pet-health-record/internal/domain/records"
)

const (
	dueSoonWindowDays  = 30
	weightTrendPercent = 5.0
	checkupCadenceDays = 365
	defaultWeightUnit  = "kg"
)

// ComputeMetrics recalcula las cuatro métricas desde cero en cada llamada.
// Peso y checkups se calculan sobre los registros de todas las mascotas
// juntos (no por mascota); se mantiene así por compatibilidad.
func ComputeMetrics(
	pets []records.Pet,
	vaccinations []records.Vaccination,
	treatments []records.Treatment,
	weights []records.WeightEntry,
	visits []records.MedicalVisit,
	now time.Time,
) HealthMetrics {
	return HealthMetrics{
		Vaccinations: vaccinationMetrics(pets, vaccinations, now),
		Medications:  medicationMetrics(treatments),
		Weight:       weightMetrics(weights),
		Checkups:     checkupMetrics(visits, now),
	}
}

// EmptyMetrics es lo que se publica cuando no hay datos o el fetch falló.
func EmptyMetrics() HealthMetrics {
	return HealthMetrics{
		Medications: MedicationMetrics{ByPet: map[string]int{}},
		Weight:      WeightMetrics{Trend: TrendUnknown, Unit: defaultWeightUnit},
	}
}

func vaccinationMetrics(pets []records.Pet, vaccinations []records.Vaccination, now time.Time) VaccinationMetrics {
	today := dateOnly(now)
	soonLimit := today.AddDate(0, 0, dueSoonWindowDays)

	type petState struct {
		hasAny  bool
		overdue bool
	}
	state := make(map[string]*petState, len(pets))
	for _, p := range pets {
		state[p.ID] = &petState{}
	}

	m := VaccinationMetrics{Total: len(pets)}

	for _, v := range vaccinations {
		st := state[v.PetID]
		if st != nil {
			st.hasAny = true
		}
		if v.NextDueDate == nil {
			continue
		}
		due := dateOnly(*v.NextDueDate)
		switch {
		case due.Before(today):
			m.Overdue++
			if st != nil {
				st.overdue = true
			}
		case due.Before(soonLimit):
			m.DueSoon++
		}
	}

	for _, p := range pets {
		if st := state[p.ID]; st.hasAny && !st.overdue {
			m.Current++
		}
	}

	if m.Total > 0 {
		m.Percentage = int(math.Round(float64(m.Current) / float64(m.Total) * 100))
	}
	return m
}

func medicationMetrics(treatments []records.Treatment) MedicationMetrics {
	m := MedicationMetrics{ByPet: map[string]int{}}
	for _, t := range treatments {
		if t.Category != records.CategoryMedication {
			continue
		}
		m.Total++
		if t.IsActive {
			m.Active++
			m.ByPet[t.PetID]++
		}
	}
	return m
}

func weightMetrics(weights []records.WeightEntry) WeightMetrics {
	if len(weights) < 2 {
		return WeightMetrics{Trend: TrendUnknown, Unit: defaultWeightUnit}
	}

	sorted := make([]records.WeightEntry, len(weights))
	copy(sorted, weights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newerWeight(sorted[i], sorted[j])
	})

	latest, previous := sorted[0], sorted[1]
	raw := latest.Weight - previous.Weight

	pct := 0.0
	if previous.Weight != 0 {
		pct = math.Abs(raw/previous.Weight) * 100
	}

	trend := TrendStable
	switch {
	case raw > 0 && pct > weightTrendPercent:
		trend = TrendGaining
	case raw < 0 && pct > weightTrendPercent:
		trend = TrendLosing
	}

	unit := latest.Unit
	if unit == "" {
		unit = defaultWeightUnit
	}
	last := latest.Weight

	return WeightMetrics{
		Trend:            trend,
		Change:           math.Abs(raw),
		ChangePercentage: pct,
		LastWeight:       &last,
		Unit:             unit,
	}
}

// weightRecordedAt prioriza la fecha de registro del peso sobre created_at.
// newerWeight ordena por fecha de registro; a igual fecha decide created_at y
// luego el id, así el resultado no depende del orden de entrada.
func newerWeight(a, b records.WeightEntry) bool {
	ra, rb := weightRecordedAt(a), weightRecordedAt(b)
	if !ra.Equal(rb) {
		return ra.After(rb)
	}
	ca, cb := a.Timestamp(), b.Timestamp()
	if !ca.Equal(cb) {
		return ca.After(cb)
	}
	return a.ID > b.ID
}

func weightRecordedAt(w records.WeightEntry) time.Time {
	if w.DateRecorded != nil {
		return *w.DateRecorded
	}
	return w.Timestamp()
}

func checkupMetrics(visits []records.MedicalVisit, now time.Time) CheckupMetrics {
	var last *time.Time
	for _, v := range visits {
		if v.VisitDate == nil {
			continue
		}
		if last == nil || v.VisitDate.After(*last) {
			d := *v.VisitDate
			last = &d
		}
	}
	if last == nil {
		return CheckupMetrics{}
	}

	today := dateOnly(now)
	lastDay := dateOnly(*last)
	next := lastDay.AddDate(0, 0, checkupCadenceDays)
	until := floorDays(today, next)

	return CheckupMetrics{
		DaysSinceLastVisit: floorDays(lastDay, today),
		NextDueDate:        &next,
		DaysUntilNext:      until,
		IsOverdue:          until < 0,
	}
}
