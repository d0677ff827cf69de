package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"pet-health-record/internal/domain/records"
	"pet-health-record/internal/platform/httpclient"
	"pet-health-record/internal/platform/metrics"
)

const backend = "rest"

var (
	ErrNotConfigured = errors.New("rest store not configured")
)

// Config del backend hosteado (API REST estilo PostgREST).
type Config struct {
	BaseURL string // p.ej. https://xyz.example.co/rest/v1
	APIKey  string
	Timeout time.Duration

	// Opcional, para tests.
	Transport http.RoundTripper
}

// Store implementa records.Store leyendo tablas vía REST.
type Store struct {
	c *httpclient.Client
}

func NewStore(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	key := strings.TrimSpace(cfg.APIKey)
	c, err := httpclient.New(cfg.BaseURL, cfg.Timeout,
		httpclient.WithTransport(cfg.Transport),
		httpclient.WithHeader("apikey", key),
		httpclient.WithHeader("Authorization", "Bearer "+key),
	)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	defer metrics.ObserveStore(backend, "ping", time.Now())
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "1")
	var out []json.RawMessage
	return s.c.GetJSON(ctx, "pets", q, &out)
}

// ListPets: propias + las de shares aceptados, en orden de creación.
func (s *Store) ListPets(ctx context.Context, userID string) ([]records.Pet, error) {
	defer metrics.ObserveStore(backend, "list_pets", time.Now())

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []records.Pet{}, nil
	}

	var owned []petRow
	q := url.Values{}
	q.Set("owner_id", "eq."+userID)
	if err := s.c.GetJSON(ctx, "pets", q, &owned); err != nil {
		return nil, fmt.Errorf("rest: list owned pets: %w", err)
	}

	var shares []struct {
		PetID string `json:"pet_id"`
	}
	q = url.Values{}
	q.Set("select", "pet_id")
	q.Set("shared_with_user_id", "eq."+userID)
	q.Set("status", "eq.accepted")
	if err := s.c.GetJSON(ctx, "pet_shares", q, &shares); err != nil {
		return nil, fmt.Errorf("rest: list pet shares: %w", err)
	}

	seen := make(map[string]struct{}, len(owned))
	out := make([]records.Pet, 0, len(owned)+len(shares))
	for _, row := range owned {
		seen[row.ID] = struct{}{}
		out = append(out, row.toPet())
	}

	sharedIDs := make([]string, 0, len(shares))
	for _, sh := range shares {
		if _, ok := seen[sh.PetID]; ok {
			continue
		}
		seen[sh.PetID] = struct{}{}
		sharedIDs = append(sharedIDs, sh.PetID)
	}
	if len(sharedIDs) > 0 {
		var shared []petRow
		q = url.Values{}
		q.Set("id", inList(sharedIDs))
		if err := s.c.GetJSON(ctx, "pets", q, &shared); err != nil {
			return nil, fmt.Errorf("rest: list shared pets: %w", err)
		}
		for _, row := range shared {
			out = append(out, row.toPet())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListVaccinations(ctx context.Context, f records.Filter) ([]records.Vaccination, error) {
	defer metrics.ObserveStore(backend, "list_vaccinations", time.Now())
	if len(f.PetIDs) == 0 {
		return []records.Vaccination{}, nil
	}
	var rows []vaccinationRow
	if err := s.c.GetJSON(ctx, "vaccinations", listQuery(f, "date_given"), &rows); err != nil {
		return nil, fmt.Errorf("rest: list vaccinations: %w", err)
	}
	out := make([]records.Vaccination, 0, len(rows))
	for _, r := range rows {
		out = append(out, records.Vaccination{
			ID:          r.ID,
			PetID:       r.PetID,
			VaccineName: r.VaccineName,
			DateGiven:   r.DateGiven.ptr(),
			NextDueDate: r.NextDueDate.ptr(),
			Notes:       r.Notes,
			CreatedAt:   r.CreatedAt.ptr(),
		})
	}
	return out, nil
}

func (s *Store) ListTreatments(ctx context.Context, f records.Filter) ([]records.Treatment, error) {
	defer metrics.ObserveStore(backend, "list_treatments", time.Now())
	if len(f.PetIDs) == 0 {
		return []records.Treatment{}, nil
	}
	q := listQuery(f, "start_date")
	if f.ActiveOnly {
		q.Set("is_active", "eq.true")
	}
	var rows []treatmentRow
	if err := s.c.GetJSON(ctx, "treatments", q, &rows); err != nil {
		return nil, fmt.Errorf("rest: list treatments: %w", err)
	}
	out := make([]records.Treatment, 0, len(rows))
	for _, r := range rows {
		out = append(out, records.Treatment{
			ID:                  r.ID,
			PetID:               r.PetID,
			Name:                r.TreatmentName,
			Category:            r.Category,
			IsActive:            r.IsActive,
			StartDate:           r.StartDate.ptr(),
			EndDate:             r.EndDate.ptr(),
			NextDoseDate:        r.NextDoseDate.ptr(),
			NextAppointmentDate: r.NextAppointmentDate.ptr(),
			NextDoseDateOnly:    r.NextDoseDate.isDateOnly(),
			Dosage:              r.Dosage,
			Notes:               r.Notes,
			CreatedAt:           r.CreatedAt.ptr(),
		})
	}
	return out, nil
}

func (s *Store) ListMedicalVisits(ctx context.Context, f records.Filter) ([]records.MedicalVisit, error) {
	defer metrics.ObserveStore(backend, "list_medical_visits", time.Now())
	if len(f.PetIDs) == 0 {
		return []records.MedicalVisit{}, nil
	}
	var rows []visitRow
	if err := s.c.GetJSON(ctx, "medical_visits", listQuery(f, "visit_date"), &rows); err != nil {
		return nil, fmt.Errorf("rest: list medical visits: %w", err)
	}
	out := make([]records.MedicalVisit, 0, len(rows))
	for _, r := range rows {
		out = append(out, records.MedicalVisit{
			ID:            r.ID,
			PetID:         r.PetID,
			VisitDate:     r.VisitDate.ptr(),
			VisitDateOnly: r.VisitDate.isDateOnly(),
			Reason:        r.Reason,
			ClinicName:    r.ClinicName,
			Notes:         r.Notes,
			CreatedAt:     r.CreatedAt.ptr(),
		})
	}
	return out, nil
}

func (s *Store) ListWeightEntries(ctx context.Context, f records.Filter) ([]records.WeightEntry, error) {
	defer metrics.ObserveStore(backend, "list_weight_entries", time.Now())
	if len(f.PetIDs) == 0 {
		return []records.WeightEntry{}, nil
	}
	var rows []weightRow
	if err := s.c.GetJSON(ctx, "weight_entries", listQuery(f, "date_recorded"), &rows); err != nil {
		return nil, fmt.Errorf("rest: list weight entries: %w", err)
	}
	out := make([]records.WeightEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, records.WeightEntry{
			ID:           r.ID,
			PetID:        r.PetID,
			Weight:       float64(r.WeightValue),
			Unit:         r.WeightUnit,
			DateRecorded: r.DateRecorded.ptr(),
			CreatedAt:    r.CreatedAt.ptr(),
		})
	}
	return out, nil
}

func (s *Store) ListDocuments(ctx context.Context, f records.Filter) ([]records.Document, error) {
	defer metrics.ObserveStore(backend, "list_documents", time.Now())
	if len(f.PetIDs) == 0 {
		return []records.Document{}, nil
	}
	var rows []documentRow
	if err := s.c.GetJSON(ctx, "documents", listQuery(f, ""), &rows); err != nil {
		return nil, fmt.Errorf("rest: list documents: %w", err)
	}
	out := make([]records.Document, 0, len(rows))
	for _, r := range rows {
		d := records.Document{
			ID:        r.ID,
			PetID:     r.PetID,
			FileName:  r.FileName,
			Type:      r.Type,
			SizeBytes: r.SizeBytes,
		}
		if t := r.CreatedAt.ptr(); t != nil {
			d.CreatedAt = *t
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) ListGenericEvents(ctx context.Context, userID string) ([]records.Event, error) {
	defer metrics.ObserveStore(backend, "list_events", time.Now())
	q := url.Values{}
	q.Set("user_id", "eq."+strings.TrimSpace(userID))
	q.Set("order", "start_time.asc")

	var rows []eventRow
	if err := s.c.GetJSON(ctx, "events", q, &rows); err != nil {
		return nil, fmt.Errorf("rest: list events: %w", err)
	}
	out := make([]records.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, records.Event{
			ID:          r.ID,
			UserID:      r.UserID,
			PetID:       r.PetID,
			Type:        r.Type,
			Title:       r.Title,
			StartTime:   r.StartTime.ptr(),
			Description: r.Description,
			Location:    r.Location,
		})
	}
	return out, nil
}

// listQuery: pet_id=in.(...) y, con Limit, order=created_at desc + fecha de dominio.
func listQuery(f records.Filter, domainDate string) url.Values {
	q := url.Values{}
	q.Set("pet_id", inList(f.PetIDs))
	if f.Limit > 0 {
		order := "created_at.desc.nullslast"
		if domainDate != "" {
			order += "," + domainDate + ".desc.nullslast"
		}
		q.Set("order", order)
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func inList(ids []string) string {
	return "in.(" + strings.Join(ids, ",") + ")"
}
