package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-health-record/internal/domain/health"
	"pet-health-record/internal/middleware"

	"github.com/go-chi/chi/v5"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

var knownEventTypes = map[health.EventType]struct{}{
	health.EventTypeVaccination: {},
	health.EventTypeTreatment:   {},
	health.EventTypeVetVisit:    {},
	health.EventTypeGrooming:    {},
	health.EventTypeOther:       {},
}

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dashboard", func(dr chi.Router) {
		dr.Get("/", refreshHandler(svc))
		dr.Get("/snapshot", snapshotHandler(svc))
		dr.Get("/activity", activityHandler(svc))
		dr.Get("/calendar", calendarHandler(svc))
		dr.Get("/calendar.ics", calendarICSHandler(svc))
		dr.Get("/alerts", alertsHandler(svc))
		dr.Get("/metrics", metricsHandler(svc))
		dr.Get("/priorities", prioritiesHandler(svc))
		dr.Get("/insights", insightsHandler(svc))
	})
}

// refreshHandler godoc
// @Summary Refrescar dashboard completo
// @Description Trae los registros de todas las mascotas visibles (propias + compartidas), recalcula todas las vistas y publica el snapshot. Si el backend falla, las vistas se devuelven vacías (nunca 5xx). Autenticación: header X-Debug-User-ID (dev) o Authorization con Bearer token (prod).
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} Snapshot
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard [get]
func refreshHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, svc.Refresh(r.Context(), userID))
	}
}

// snapshotHandler godoc
// @Summary Último snapshot publicado
// @Description Devuelve el último dashboard publicado por GET /dashboard, sin ir al backend.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} Snapshot
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "snapshot not found"
// @Router /dashboard/snapshot [get]
func snapshotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		snap, found := svc.Snapshot(userID)
		if !found {
			http.Error(w, "snapshot not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// activityHandler godoc
// @Summary Feed de actividad reciente
// @Description Une pesajes, visitas, vacunas y documentos en un feed ordenado del más reciente al más antiguo.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param limit_per_source query int false "Máximo por fuente. Por defecto 5"
// @Param limit query int false "Corte total del feed. 0 = sin corte"
// @Success 200 {array} health.ActivityItem
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard/activity [get]
func activityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()
		perSource, err := parseNonNegativeInt(q.Get("limit_per_source"))
		if err != nil {
			http.Error(w, "limit_per_source must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit, err := parseNonNegativeInt(q.Get("limit"))
		if err != nil {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, svc.Activity(r.Context(), userID, perSource, limit))
	}
}

// calendarHandler godoc
// @Summary Eventos de calendario
// @Description Une vacunas, tratamientos activos, visitas, eventos genéricos y cumpleaños sintéticos. Orden ascendente por fecha.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param pet_ids query string false "CSV de IDs de mascota (solo se consideran las visibles)"
// @Param types query string false "CSV de tipos: vaccination,treatment,vet_visit,grooming,other"
// @Param from query string false "Fecha mínima (YYYY-MM-DD o RFC3339)"
// @Param to query string false "Fecha máxima inclusive (YYYY-MM-DD o RFC3339)"
// @Success 200 {array} health.CalendarEvent
// @Failure 400 {string} string "parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard/calendar [get]
func calendarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		f, err := parseEventFilters(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, svc.Calendar(r.Context(), userID, f))
	}
}

// calendarICSHandler godoc
// @Summary Exportar calendario (iCalendar)
// @Description Mismos filtros que /dashboard/calendar, serializado como RFC 5545 para suscribirse desde un cliente de calendario.
// @Tags dashboard
// @Produce text/calendar
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param pet_ids query string false "CSV de IDs de mascota"
// @Param types query string false "CSV de tipos de evento"
// @Param from query string false "Fecha mínima (YYYY-MM-DD o RFC3339)"
// @Param to query string false "Fecha máxima inclusive (YYYY-MM-DD o RFC3339)"
// @Success 200 {string} string "VCALENDAR"
// @Failure 400 {string} string "parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard/calendar.ics [get]
func calendarICSHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		f, err := parseEventFilters(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		events := svc.Calendar(r.Context(), userID, f)

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="pet-health.ics"`)
		w.WriteHeader(http.StatusOK)
		_ = WriteICS(w, events, svc.now())
	}
}

// alertsHandler godoc
// @Summary Alertas priorizadas
// @Description Vacunas y turnos de tratamiento que vencen dentro de la ventana, ordenados por severidad y días restantes.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param days query int false "Ventana en días. Por defecto ALERT_DAYS_THRESHOLD (30)"
// @Success 200 {array} health.PriorityAlert
// @Failure 400 {string} string "days inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard/alerts [get]
func alertsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		days, err := parseNonNegativeInt(r.URL.Query().Get("days"))
		if err != nil {
			http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, svc.Alerts(r.Context(), userID, days))
	}
}

// metricsHandler godoc
// @Summary Métricas de salud
// @Description Cobertura de vacunas, medicación activa, tendencia de peso y control anual.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} health.HealthMetrics
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard/metrics [get]
func metricsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, svc.Metrics(r.Context(), userID))
	}
}

// prioritiesHandler godoc
// @Summary Prioridades del día
// @Description Dosis y visitas de hoy más alertas críticas, ordenadas por urgencia y hora.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} health.Priority
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard/priorities [get]
func prioritiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, svc.Priorities(r.Context(), userID))
	}
}

// insightsHandler godoc
// @Summary Tarjetas de insights
// @Description Recomendaciones derivadas de las métricas (vacunas, cumpleaños, peso, control, medicación, temporada).
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} health.Insight
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard/insights [get]
func insightsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, svc.Insights(r.Context(), userID))
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func parseEventFilters(r *http.Request) (health.EventFilters, error) {
	q := r.URL.Query()
	var f health.EventFilters

	f.PetIDs = splitCSV(q.Get("pet_ids"))

	for _, t := range splitCSV(q.Get("types")) {
		et := health.EventType(strings.ToLower(t))
		if _, ok := knownEventTypes[et]; !ok {
			return health.EventFilters{}, errors.New("unknown event type: " + t)
		}
		f.Types = append(f.Types, et)
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, _, err := parseDateParam(v)
		if err != nil {
			return health.EventFilters{}, errors.New("from must be YYYY-MM-DD or RFC3339")
		}
		f.StartDate = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, dateOnly, err := parseDateParam(v)
		if err != nil {
			return health.EventFilters{}, errors.New("to must be YYYY-MM-DD or RFC3339")
		}
		// "to" como fecha pura cubre el día completo.
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.EndDate = &t
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return health.EventFilters{}, errors.New("to must not be before from")
	}
	return f, nil
}

// parseDateParam acepta YYYY-MM-DD (medianoche UTC) o RFC3339.
func parseDateParam(v string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, ErrInvalidInput
	}
	return t, false, nil
}

func parseNonNegativeInt(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, ErrInvalidInput
	}
	return n, nil
}

func splitCSV(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	out := make([]string, 0)
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
