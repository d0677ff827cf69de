package health

import "time"

// ActivityKind identifica la fuente de un ActivityItem.
type ActivityKind string

const (
	ActivityWeight      ActivityKind = "weight"
	ActivityVisit       ActivityKind = "visit"
	ActivityVaccination ActivityKind = "vaccination"
	ActivityDocument    ActivityKind = "document"
)

// ActivityItem es una entrada del feed de actividad.
// ID tiene la forma "<kind>-<sourceId>" para ser único entre tipos.
type ActivityItem struct {
	ID          string       `json:"id"`
	Type        ActivityKind `json:"type"`
	PetID       string       `json:"pet_id"`
	PetName     string       `json:"pet_name"`
	PetPhotoURL string       `json:"pet_photo_url,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	Icon        string       `json:"icon"`
}

// EventType es el tag de tipo usado por los filtros del calendario.
type EventType string

const (
	EventTypeVaccination EventType = "vaccination"
	EventTypeTreatment   EventType = "treatment"
	EventTypeVetVisit    EventType = "vet_visit"
	EventTypeGrooming    EventType = "grooming"
	EventTypeOther       EventType = "other"
)

type PriorityLevel string

const (
	PriorityHigh   PriorityLevel = "high"
	PriorityMedium PriorityLevel = "medium"
	PriorityLow    PriorityLevel = "low"
)

type CalendarEvent struct {
	ID        string        `json:"id"`
	PetID     string        `json:"pet_id,omitempty"`
	PetName   string        `json:"pet_name,omitempty"`
	Type      EventType     `json:"type"`
	Title     string        `json:"title"`
	DueDate   time.Time     `json:"due_date"`
	Priority  PriorityLevel `json:"priority"`
	Notes     string        `json:"notes,omitempty"`
	Color     string        `json:"color"`
	RelatedID string        `json:"related_id,omitempty"`
	Location  string        `json:"location,omitempty"`

	// Solo cumpleaños: edad que cumple en DueDate.
	Age *int `json:"age,omitempty"`
}

// EventFilters: campos vacíos/nil = sin filtro.
type EventFilters struct {
	PetIDs    []string    `json:"pet_ids,omitempty"`
	Types     []EventType `json:"types,omitempty"`
	StartDate *time.Time  `json:"start_date,omitempty"`
	EndDate   *time.Time  `json:"end_date,omitempty"`
}

type AlertType string

const (
	AlertVaccination AlertType = "vaccination"
	AlertTreatment   AlertType = "treatment"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type PriorityAlert struct {
	ID            string    `json:"id"`
	Type          AlertType `json:"type"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PetID         string    `json:"pet_id"`
	PetName       string    `json:"pet_name"`
	DueDate       time.Time `json:"due_date"`
	DaysRemaining int       `json:"days_remaining"`
	Severity      Severity  `json:"severity"`
	ActionLabel   string    `json:"action_label"`
	ActionURL     string    `json:"action_url"`
}

type WeightTrend string

const (
	TrendGaining WeightTrend = "gaining"
	TrendLosing  WeightTrend = "losing"
	TrendStable  WeightTrend = "stable"
	TrendUnknown WeightTrend = "unknown"
)

type VaccinationMetrics struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
	Overdue    int `json:"overdue"`
	DueSoon    int `json:"due_soon"`
}

type MedicationMetrics struct {
	Active int            `json:"active"`
	Total  int            `json:"total"`
	ByPet  map[string]int `json:"by_pet"`
}

type WeightMetrics struct {
	Trend            WeightTrend `json:"trend"`
	Change           float64     `json:"change"`
	ChangePercentage float64     `json:"change_percentage"`
	LastWeight       *float64    `json:"last_weight,omitempty"`
	Unit             string      `json:"unit"`
}

type CheckupMetrics struct {
	DaysSinceLastVisit int        `json:"days_since_last_visit"`
	NextDueDate        *time.Time `json:"next_due_date,omitempty"`
	DaysUntilNext      int        `json:"days_until_next"`
	IsOverdue          bool       `json:"is_overdue"`
}

type HealthMetrics struct {
	Vaccinations VaccinationMetrics `json:"vaccinations"`
	Medications  MedicationMetrics  `json:"medications"`
	Weight       WeightMetrics      `json:"weight"`
	Checkups     CheckupMetrics     `json:"checkups"`
}

type PriorityType string

const (
	PriorityMedication  PriorityType = "medication"
	PriorityAppointment PriorityType = "appointment"
	PriorityAlertItem   PriorityType = "alert"
)

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
)

// Priority es un ítem de "qué necesita atención hoy".
type Priority struct {
	ID          string       `json:"id"`
	Type        PriorityType `json:"type"`
	PetID       string       `json:"pet_id"`
	PetName     string       `json:"pet_name"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueTime     *time.Time   `json:"due_time,omitempty"`
	Urgency     Urgency      `json:"urgency"`
	Completed   bool         `json:"completed"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
}

type InsightSeverity string

const (
	InsightCritical InsightSeverity = "critical"
	InsightWarning  InsightSeverity = "warning"
	InsightInfo     InsightSeverity = "info"
)

type Insight struct {
	ID              string            `json:"id"`
	Type            string            `json:"type"`
	Severity        InsightSeverity   `json:"severity"`
	Icon            string            `json:"icon"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	ActionLabel     string            `json:"action_label"`
	ActionType      string            `json:"action_type"`
	ActionData      map[string]string `json:"action_data,omitempty"`
	PetID           string            `json:"pet_id,omitempty"`
	PetName         string            `json:"pet_name,omitempty"`
	Dismissible     bool              `json:"dismissible"`
	CreatedAt       time.Time         `json:"created_at"`
	Color           string            `json:"color"`
	BackgroundColor string            `json:"background_color"`
}
