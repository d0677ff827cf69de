package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pet-health-record/internal/domain/records"
	"pet-health-record/internal/platform/metrics"
)

const backend = "postgres"

// RecordsStore implementa records.Store sobre el schema del backend.
// Solo lectura: nunca escribe.
type RecordsStore struct {
	db *sql.DB
}

func NewRecordsStore(db *sql.DB) *RecordsStore {
	return &RecordsStore{db: db}
}

func (r *RecordsStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ListPets: propias + compartidas con share aceptado.
func (r *RecordsStore) ListPets(ctx context.Context, userID string) ([]records.Pet, error) {
	defer metrics.ObserveStore(backend, "list_pets", time.Now())

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []records.Pet{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			p.id, p.owner_user_id,
			p.name, COALESCE(p.species, ''), COALESCE(p.photo_url, ''),
			p.date_of_birth, p.created_at
		FROM pets p
		WHERE p.owner_user_id = $1
		   OR EXISTS (
				SELECT 1 FROM pet_shares s
				WHERE s.pet_id = p.id
				  AND s.shared_with_user_id = $1
				  AND s.status = 'accepted'
		   )
		ORDER BY p.created_at ASC, p.id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list pets: %w", err)
	}
	defer rows.Close()

	out := make([]records.Pet, 0)
	for rows.Next() {
		var p records.Pet
		var dob sql.NullTime
		if err := rows.Scan(
			&p.ID,
			&p.OwnerUserID,
			&p.Name,
			&p.Species,
			&p.PhotoURL,
			&dob,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.DateOfBirth = timePtr(dob)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *RecordsStore) ListVaccinations(ctx context.Context, f records.Filter) ([]records.Vaccination, error) {
	defer metrics.ObserveStore(backend, "list_vaccinations", time.Now())
	if len(f.PetIDs) == 0 {
		return []records.Vaccination{}, nil
	}

	q, args := listQuery(`
		SELECT id, pet_id, vaccine_name, date_given, next_due_date,
		       COALESCE(notes, ''), created_at
		FROM vaccinations
	`, "COALESCE(created_at, date_given)", f, "")

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list vaccinations: %w", err)
	}
	defer rows.Close()

	out := make([]records.Vaccination, 0)
	for rows.Next() {
		var v records.Vaccination
		var given, next, created sql.NullTime
		if err := rows.Scan(&v.ID, &v.PetID, &v.VaccineName, &given, &next, &v.Notes, &created); err != nil {
			return nil, err
		}
		v.DateGiven = timePtr(given)
		v.NextDueDate = timePtr(next)
		v.CreatedAt = timePtr(created)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *RecordsStore) ListTreatments(ctx context.Context, f records.Filter) ([]records.Treatment, error) {
	defer metrics.ObserveStore(backend, "list_treatments", time.Now())
	if len(f.PetIDs) == 0 {
		return []records.Treatment{}, nil
	}

	extra := ""
	if f.ActiveOnly {
		extra = "is_active = TRUE"
	}
	q, args := listQuery(`
		SELECT id, pet_id, treatment_name, COALESCE(category, ''), is_active,
		       start_date, end_date, next_dose_date, `+isDateColumn("next_dose_date")+`,
		       next_appointment_date,
		       COALESCE(dosage, ''), COALESCE(notes, ''), created_at
		FROM treatments
	`, "COALESCE(created_at, start_date)", f, extra)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list treatments: %w", err)
	}
	defer rows.Close()

	out := make([]records.Treatment, 0)
	for rows.Next() {
		var t records.Treatment
		var start, end, dose, appt, created sql.NullTime
		if err := rows.Scan(
			&t.ID,
			&t.PetID,
			&t.Name,
			&t.Category,
			&t.IsActive,
			&start,
			&end,
			&dose,
			&t.NextDoseDateOnly,
			&appt,
			&t.Dosage,
			&t.Notes,
			&created,
		); err != nil {
			return nil, err
		}
		t.StartDate = timePtr(start)
		t.EndDate = timePtr(end)
		t.NextDoseDate = timePtr(dose)
		t.NextAppointmentDate = timePtr(appt)
		t.CreatedAt = timePtr(created)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *RecordsStore) ListMedicalVisits(ctx context.Context, f records.Filter) ([]records.MedicalVisit, error) {
	defer metrics.ObserveStore(backend, "list_medical_visits", time.Now())
	if len(f.PetIDs) == 0 {
		return []records.MedicalVisit{}, nil
	}

	q, args := listQuery(`
		SELECT id, pet_id, visit_date, `+isDateColumn("visit_date")+`, COALESCE(reason, ''),
		       COALESCE(clinic_name, ''), COALESCE(notes, ''), created_at
		FROM medical_visits
	`, "COALESCE(created_at, visit_date)", f, "")

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list medical visits: %w", err)
	}
	defer rows.Close()

	out := make([]records.MedicalVisit, 0)
	for rows.Next() {
		var m records.MedicalVisit
		var visit, created sql.NullTime
		if err := rows.Scan(&m.ID, &m.PetID, &visit, &m.VisitDateOnly, &m.Reason, &m.ClinicName, &m.Notes, &created); err != nil {
			return nil, err
		}
		m.VisitDate = timePtr(visit)
		m.CreatedAt = timePtr(created)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *RecordsStore) ListWeightEntries(ctx context.Context, f records.Filter) ([]records.WeightEntry, error) {
	defer metrics.ObserveStore(backend, "list_weight_entries", time.Now())
	if len(f.PetIDs) == 0 {
		return []records.WeightEntry{}, nil
	}

	q, args := listQuery(`
		SELECT id, pet_id, weight_value, COALESCE(weight_unit, ''), date_recorded, created_at
		FROM weight_entries
	`, "COALESCE(created_at, date_recorded)", f, "")

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list weight entries: %w", err)
	}
	defer rows.Close()

	out := make([]records.WeightEntry, 0)
	for rows.Next() {
		var w records.WeightEntry
		var recorded, created sql.NullTime
		if err := rows.Scan(&w.ID, &w.PetID, &w.Weight, &w.Unit, &recorded, &created); err != nil {
			return nil, err
		}
		w.DateRecorded = timePtr(recorded)
		w.CreatedAt = timePtr(created)
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *RecordsStore) ListDocuments(ctx context.Context, f records.Filter) ([]records.Document, error) {
	defer metrics.ObserveStore(backend, "list_documents", time.Now())
	if len(f.PetIDs) == 0 {
		return []records.Document{}, nil
	}

	q, args := listQuery(`
		SELECT id, pet_id, file_name, COALESCE(type, ''), COALESCE(size_bytes, 0), created_at
		FROM documents
	`, "created_at", f, "")

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list documents: %w", err)
	}
	defer rows.Close()

	out := make([]records.Document, 0)
	for rows.Next() {
		var d records.Document
		if err := rows.Scan(&d.ID, &d.PetID, &d.FileName, &d.Type, &d.SizeBytes, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *RecordsStore) ListGenericEvents(ctx context.Context, userID string) ([]records.Event, error) {
	defer metrics.ObserveStore(backend, "list_events", time.Now())

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, COALESCE(pet_id::text, ''), type, title, start_time,
		       COALESCE(description, ''), COALESCE(location, '')
		FROM events
		WHERE user_id = $1
		ORDER BY start_time ASC
	`, strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("postgres: list events: %w", err)
	}
	defer rows.Close()

	out := make([]records.Event, 0)
	for rows.Next() {
		var e records.Event
		var start sql.NullTime
		if err := rows.Scan(&e.ID, &e.UserID, &e.PetID, &e.Type, &e.Title, &start, &e.Description, &e.Location); err != nil {
			return nil, err
		}
		e.StartTime = timePtr(start)
		out = append(out, e)
	}
	return out, rows.Err()
}

// listQuery arma "WHERE pet_id = ANY($1) [AND extra] [ORDER BY tsExpr DESC LIMIT $2]".
// Sin límite no se ordena: los agregadores ordenan por su cuenta.
func listQuery(base, tsExpr string, f records.Filter, extra string) (string, []any) {
	sb := strings.Builder{}
	sb.WriteString(base)
	sb.WriteString(" WHERE pet_id = ANY($1)")
	args := []any{f.PetIDs}

	if extra != "" {
		sb.WriteString(" AND " + extra)
	}
	if f.Limit > 0 {
		sb.WriteString(" ORDER BY " + tsExpr + " DESC NULLS LAST")
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)+1))
		args = append(args, f.Limit)
	}
	return sb.String(), args
}

// isDateColumn distingue columnas date de timestamp/timestamptz; un date
// escaneado llega como medianoche UTC y no se puede inferir del valor.
func isDateColumn(col string) string {
	return "(pg_typeof(" + col + ") = 'date'::regtype)"
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
