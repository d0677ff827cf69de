package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pet-health-record/internal/domain/records"
)

// Filas tal como las devuelve la API (snake_case, fechas como string).

type petRow struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	PhotoURL    string   `json:"photo_url"`
	DateOfBirth flexTime `json:"date_of_birth"`
	CreatedAt   flexTime `json:"created_at"`
}

func (r petRow) toPet() records.Pet {
	p := records.Pet{
		ID:          r.ID,
		OwnerUserID: r.OwnerID,
		Name:        r.Name,
		Species:     r.Species,
		PhotoURL:    r.PhotoURL,
		DateOfBirth: r.DateOfBirth.ptr(),
	}
	if t := r.CreatedAt.ptr(); t != nil {
		p.CreatedAt = *t
	}
	return p
}

type vaccinationRow struct {
	ID          string   `json:"id"`
	PetID       string   `json:"pet_id"`
	VaccineName string   `json:"vaccine_name"`
	DateGiven   flexTime `json:"date_given"`
	NextDueDate flexTime `json:"next_due_date"`
	Notes       string   `json:"notes"`
	CreatedAt   flexTime `json:"created_at"`
}

type treatmentRow struct {
	ID                  string   `json:"id"`
	PetID               string   `json:"pet_id"`
	TreatmentName       string   `json:"treatment_name"`
	Category            string   `json:"category"`
	IsActive            bool     `json:"is_active"`
	StartDate           flexTime `json:"start_date"`
	EndDate             flexTime `json:"end_date"`
	NextDoseDate        flexTime `json:"next_dose_date"`
	NextAppointmentDate flexTime `json:"next_appointment_date"`
	Dosage              string   `json:"dosage"`
	Notes               string   `json:"notes"`
	CreatedAt           flexTime `json:"created_at"`
}

type visitRow struct {
	ID         string   `json:"id"`
	PetID      string   `json:"pet_id"`
	VisitDate  flexTime `json:"visit_date"`
	Reason     string   `json:"reason"`
	ClinicName string   `json:"clinic_name"`
	Notes      string   `json:"notes"`
	CreatedAt  flexTime `json:"created_at"`
}

type weightRow struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	WeightValue  flexFloat `json:"weight_value"`
	WeightUnit   string    `json:"weight_unit"`
	DateRecorded flexTime  `json:"date_recorded"`
	CreatedAt    flexTime  `json:"created_at"`
}

type documentRow struct {
	ID        string   `json:"id"`
	PetID     string   `json:"pet_id"`
	FileName  string   `json:"file_name"`
	Type      string   `json:"type"`
	SizeBytes int64    `json:"size_bytes"`
	CreatedAt flexTime `json:"created_at"`
}

type eventRow struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	PetID       string   `json:"pet_id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	StartTime   flexTime `json:"start_time"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
}

// Columnas date llegan como "2006-01-02"; timestamptz como RFC3339 con o sin
// fracción; timestamp sin zona como "2006-01-02T15:04:05" (se toma como UTC).
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	dateLayout,
}

const dateLayout = "2006-01-02"

// flexTime acepta null, "" y cualquiera de timeLayouts. dateOnly queda en
// true cuando el valor vino sin hora (columna date).
type flexTime struct {
	t        time.Time
	valid    bool
	dateOnly bool
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = flexTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("rest: time must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = flexTime{}
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*f = flexTime{t: t, valid: true, dateOnly: layout == dateLayout}
			return nil
		}
	}
	return fmt.Errorf("rest: unsupported time %q", s)
}

func (f flexTime) ptr() *time.Time {
	if !f.valid {
		return nil
	}
	t := f.t
	return &t
}

func (f flexTime) isDateOnly() bool { return f.valid && f.dateOnly }

// flexFloat: numeric puede venir como número o como string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("rest: invalid number %s", string(b))
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("rest: invalid number %q", s)
	}
	*f = flexFloat(n)
	return nil
}
