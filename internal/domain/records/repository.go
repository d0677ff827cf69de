package records

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store es el puerto de lectura hacia el backend de registros.
// Los adapters viven en adapters/storage (memory, postgres, rest).
type Store interface {
	// ListPets devuelve las mascotas propias + las compartidas con share aceptado.
	ListPets(ctx context.Context, userID string) ([]Pet, error)

	ListVaccinations(ctx context.Context, filter Filter) ([]Vaccination, error)
	ListTreatments(ctx context.Context, filter Filter) ([]Treatment, error)
	ListMedicalVisits(ctx context.Context, filter Filter) ([]MedicalVisit, error)
	ListWeightEntries(ctx context.Context, filter Filter) ([]WeightEntry, error)
	ListDocuments(ctx context.Context, filter Filter) ([]Document, error)

	// ListGenericEvents no se filtra por mascota: trae todo lo del usuario.
	ListGenericEvents(ctx context.Context, userID string) ([]Event, error)

	Ping(ctx context.Context) error
}

type Filter struct {
	// PetIDs vacío => sin resultados (nunca "todas").
	PetIDs []string

	// Limit > 0 => los N más recientes por timestamp propio (desc).
	// 0 => sin límite, orden no garantizado.
	Limit int

	// Solo aplica a treatments.
	ActiveOnly bool
}

// PetIDs extrae los ids en el orden de entrada.
func PetIDs(pets []Pet) []string {
	out := make([]string, 0, len(pets))
	for _, p := range pets {
		out = append(out, p.ID)
	}
	return out
}
