package records

import "time"

// Los registros son propiedad del backend. Este servicio solo los lee;
// los campos opcionales se modelan con punteros (nil = no aplica).

// Pet es una mascota visible para el usuario (propia o compartida).
type Pet struct {
	ID          string
	OwnerUserID string

	Name     string
	Species  string
	PhotoURL string

	DateOfBirth *time.Time

	CreatedAt time.Time
}

// Vaccination sin NextDueDate nunca queda "due" ni "overdue".
type Vaccination struct {
	ID    string
	PetID string

	VaccineName string
	DateGiven   *time.Time
	NextDueDate *time.Time
	Notes       string

	CreatedAt *time.Time
}

type Treatment struct {
	ID    string
	PetID string

	Name     string
	Category string // "Medication", "Supplement", ...
	IsActive bool

	StartDate           *time.Time
	EndDate             *time.Time
	NextDoseDate        *time.Time
	NextAppointmentDate *time.Time
	// NextDoseDateOnly: la columna es date (sin hora), no timestamp.
	NextDoseDateOnly bool

	Dosage string
	Notes  string

	CreatedAt *time.Time
}

// CategoryMedication es la única categoría que cuenta para las métricas de medicación.
const CategoryMedication = "Medication"

type MedicalVisit struct {
	ID    string
	PetID string

	VisitDate     *time.Time
	VisitDateOnly bool // visit_date sin hora
	Reason        string
	ClinicName    string
	Notes         string

	CreatedAt *time.Time
}

type WeightEntry struct {
	ID    string
	PetID string

	Weight       float64
	Unit         string // "kg", "lb"
	DateRecorded *time.Time

	CreatedAt *time.Time
}

type Document struct {
	ID    string
	PetID string

	FileName  string
	Type      string
	SizeBytes int64

	CreatedAt time.Time
}

// Event es un evento agendado a mano (no vacuna ni tratamiento).
// PetID vacío = evento global del usuario.
type Event struct {
	ID     string
	UserID string
	PetID  string

	Type        string
	Title       string
	StartTime   *time.Time
	Description string
	Location    string
}

// Timestamp devuelve created_at y, si falta, la fecha de dominio del registro.
// Muchas filas son anteriores al tracking de created_at.
func (v Vaccination) Timestamp() time.Time { return firstTime(v.CreatedAt, v.DateGiven) }

func (m MedicalVisit) Timestamp() time.Time { return firstTime(m.CreatedAt, m.VisitDate) }

func (w WeightEntry) Timestamp() time.Time { return firstTime(w.CreatedAt, w.DateRecorded) }

func (t Treatment) Timestamp() time.Time { return firstTime(t.CreatedAt, t.StartDate) }

func (d Document) Timestamp() time.Time { return d.CreatedAt }

func firstTime(ts ...*time.Time) time.Time {
	for _, t := range ts {
		if t != nil && !t.IsZero() {
			return *t
		}
	}
	return time.Time{}
}
