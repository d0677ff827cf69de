package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-health-record/internal/domain/records"

	"github.com/google/uuid"
)

// Store implementa records.Store en memoria (dev y tests e2e).
// Los Add* generan id con uuid si viene vacío y devuelven el id final.
type Store struct {
	mu sync.RWMutex

	pets   map[string]records.Pet
	shares map[string]map[string]struct{} // petID -> userIDs con share aceptado

	vaccinations []records.Vaccination
	treatments   []records.Treatment
	visits       []records.MedicalVisit
	weights      []records.WeightEntry
	documents    []records.Document
	events       []records.Event
}

func NewStore() *Store {
	return &Store{
		pets:   make(map[string]records.Pet),
		shares: make(map[string]map[string]struct{}),
	}
}

func ensureID(id string) string {
	if strings.TrimSpace(id) == "" {
		return uuid.NewString()
	}
	return id
}

func (s *Store) AddPet(p records.Pet) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(p.OwnerUserID) == "" {
		return "", errors.New("pet owner required")
	}
	p.ID = ensureID(p.ID)
	if _, exists := s.pets[p.ID]; exists {
		return "", errors.New("pet already exists")
	}
	s.pets[p.ID] = p
	return p.ID, nil
}

// AcceptShare deja la mascota visible para userID (share aceptado).
func (s *Store) AcceptShare(petID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[petID]; !ok {
		return records.ErrNotFound
	}
	if s.shares[petID] == nil {
		s.shares[petID] = make(map[string]struct{})
	}
	s.shares[petID][userID] = struct{}{}
	return nil
}

func (s *Store) AddVaccination(v records.Vaccination) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = ensureID(v.ID)
	s.vaccinations = append(s.vaccinations, v)
	return v.ID
}

func (s *Store) AddTreatment(t records.Treatment) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = ensureID(t.ID)
	s.treatments = append(s.treatments, t)
	return t.ID
}

func (s *Store) AddMedicalVisit(m records.MedicalVisit) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = ensureID(m.ID)
	s.visits = append(s.visits, m)
	return m.ID
}

func (s *Store) AddWeightEntry(w records.WeightEntry) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = ensureID(w.ID)
	s.weights = append(s.weights, w)
	return w.ID
}

func (s *Store) AddDocument(d records.Document) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = ensureID(d.ID)
	s.documents = append(s.documents, d)
	return d.ID
}

func (s *Store) AddEvent(e records.Event) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = ensureID(e.ID)
	s.events = append(s.events, e)
	return e.ID
}

func (s *Store) ListPets(ctx context.Context, userID string) ([]records.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]records.Pet, 0)
	for id, p := range s.pets {
		_, shared := s.shares[id][userID]
		if p.OwnerUserID == userID || shared {
			out = append(out, p)
		}
	}

	// Orden estable por created_at asc (el color de cada mascota depende del orden)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListVaccinations(ctx context.Context, f records.Filter) ([]records.Vaccination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return selectRecords(s.vaccinations, f, func(v records.Vaccination) bool { return true },
		func(v records.Vaccination) string { return v.PetID }, records.Vaccination.Timestamp), nil
}

func (s *Store) ListTreatments(ctx context.Context, f records.Filter) ([]records.Treatment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keep := func(t records.Treatment) bool { return !f.ActiveOnly || t.IsActive }
	return selectRecords(s.treatments, f, keep,
		func(t records.Treatment) string { return t.PetID }, records.Treatment.Timestamp), nil
}

func (s *Store) ListMedicalVisits(ctx context.Context, f records.Filter) ([]records.MedicalVisit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return selectRecords(s.visits, f, func(records.MedicalVisit) bool { return true },
		func(m records.MedicalVisit) string { return m.PetID }, records.MedicalVisit.Timestamp), nil
}

func (s *Store) ListWeightEntries(ctx context.Context, f records.Filter) ([]records.WeightEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return selectRecords(s.weights, f, func(records.WeightEntry) bool { return true },
		func(w records.WeightEntry) string { return w.PetID }, records.WeightEntry.Timestamp), nil
}

func (s *Store) ListDocuments(ctx context.Context, f records.Filter) ([]records.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return selectRecords(s.documents, f, func(records.Document) bool { return true },
		func(d records.Document) string { return d.PetID }, records.Document.Timestamp), nil
}

func (s *Store) ListGenericEvents(ctx context.Context, userID string) ([]records.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]records.Event, 0)
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// selectRecords filtra por mascota y, con Limit > 0, devuelve los N más
// recientes (desc). Siempre copia: el caller no comparte el slice interno.
func selectRecords[T any](
	items []T,
	f records.Filter,
	keep func(T) bool,
	petID func(T) string,
	ts func(T) time.Time,
) []T {
	if len(f.PetIDs) == 0 {
		return []T{}
	}
	wanted := make(map[string]struct{}, len(f.PetIDs))
	for _, id := range f.PetIDs {
		wanted[id] = struct{}{}
	}

	out := make([]T, 0)
	for _, it := range items {
		if _, ok := wanted[petID(it)]; !ok || !keep(it) {
			continue
		}
		out = append(out, it)
	}

	if f.Limit > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return ts(out[i]).After(ts(out[j]))
		})
		if len(out) > f.Limit {
			out = out[:f.Limit]
		}
	}
	return out
}
