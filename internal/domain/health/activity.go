package health

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"pet-health-record/internal/domain/records"
)

const DefaultActivityLimitPerSource = 5

// ActivitySources son los registros crudos ya traídos del store.
type ActivitySources struct {
	Weights      []records.WeightEntry
	Visits       []records.MedicalVisit
	Vaccinations []records.Vaccination
	Documents    []records.Document
}

// Activities arma el feed unificado: por fuente se queda con los
// limitPerSource más recientes, descarta registros de mascotas que no están
// en el índice, ordena todo desc por timestamp y corta en totalLimit.
// Empates conservan el orden de concatenación (weights, visits, vaccinations, documents).
func Activities(ix PetIndex, src ActivitySources, limitPerSource, totalLimit int) []ActivityItem {
	if ix.Len() == 0 {
		return []ActivityItem{}
	}
	if limitPerSource <= 0 {
		limitPerSource = DefaultActivityLimitPerSource
	}

	out := make([]ActivityItem, 0)

	for _, w := range mostRecent(src.Weights, limitPerSource, records.WeightEntry.Timestamp) {
		pet, ok := ix.Lookup(w.PetID)
		if !ok {
			continue
		}
		unit := w.Unit
		if unit == "" {
			unit = "kg"
		}
		out = append(out, ActivityItem{
			ID:          "weight-" + w.ID,
			Type:        ActivityWeight,
			PetID:       w.PetID,
			PetName:     pet.Name,
			PetPhotoURL: pet.PhotoURL,
			Title:       "Weight Logged",
			Description: fmt.Sprintf("%s weighed %s %s", pet.Name, strconv.FormatFloat(w.Weight, 'f', -1, 64), unit),
			Timestamp:   w.Timestamp(),
			Icon:        "scale",
		})
	}

	for _, v := range mostRecent(src.Visits, limitPerSource, records.MedicalVisit.Timestamp) {
		pet, ok := ix.Lookup(v.PetID)
		if !ok {
			continue
		}
		desc := pet.Name + " had a vet visit"
		switch {
		case v.Reason != "" && v.ClinicName != "":
			desc = fmt.Sprintf("%s: %s at %s", pet.Name, v.Reason, v.ClinicName)
		case v.Reason != "":
			desc = fmt.Sprintf("%s: %s", pet.Name, v.Reason)
		case v.ClinicName != "":
			desc = fmt.Sprintf("%s visited %s", pet.Name, v.ClinicName)
		}
		out = append(out, ActivityItem{
			ID:          "visit-" + v.ID,
			Type:        ActivityVisit,
			PetID:       v.PetID,
			PetName:     pet.Name,
			PetPhotoURL: pet.PhotoURL,
			Title:       "Vet Visit",
			Description: desc,
			Timestamp:   v.Timestamp(),
			Icon:        "medical",
		})
	}

	for _, v := range mostRecent(src.Vaccinations, limitPerSource, records.Vaccination.Timestamp) {
		pet, ok := ix.Lookup(v.PetID)
		if !ok {
			continue
		}
		out = append(out, ActivityItem{
			ID:          "vaccination-" + v.ID,
			Type:        ActivityVaccination,
			PetID:       v.PetID,
			PetName:     pet.Name,
			PetPhotoURL: pet.PhotoURL,
			Title:       "Vaccination",
			Description: fmt.Sprintf("%s received %s", pet.Name, v.VaccineName),
			Timestamp:   v.Timestamp(),
			Icon:        "shield",
		})
	}

	for _, d := range mostRecent(src.Documents, limitPerSource, records.Document.Timestamp) {
		pet, ok := ix.Lookup(d.PetID)
		if !ok {
			continue
		}
		out = append(out, ActivityItem{
			ID:          "document-" + d.ID,
			Type:        ActivityDocument,
			PetID:       d.PetID,
			PetName:     pet.Name,
			PetPhotoURL: pet.PhotoURL,
			Title:       "Document Added",
			Description: fmt.Sprintf("%s uploaded for %s", d.FileName, pet.Name),
			Timestamp:   d.Timestamp(),
			Icon:        "document",
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if totalLimit > 0 && len(out) > totalLimit {
		out = out[:totalLimit]
	}
	return out
}

// mostRecent ordena una copia desc por ts y corta en limit.
func mostRecent[T any](in []T, limit int, ts func(T) time.Time) []T {
	cp := make([]T, len(in))
	copy(cp, in)
	sort.SliceStable(cp, func(i, j int) bool {
		return ts(cp[i]).After(ts(cp[j]))
	})
	if limit > 0 && len(cp) > limit {
		cp = cp[:limit]
	}
	return cp
}
