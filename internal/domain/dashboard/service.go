package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-health-record/internal/domain/health"
	"pet-health-record/internal/domain/records"
	"pet-health-record/internal/platform/logger"
	"pet-health-record/internal/platform/metrics"

	"golang.org/x/sync/errgroup"
)

const DefaultFetchTimeout = 10 * time.Second

// Nombres de vista: label de métricas y campo "view" de los logs.
const (
	viewActivity   = "activity"
	viewCalendar   = "calendar"
	viewAlerts     = "alerts"
	viewMetrics    = "metrics"
	viewPriorities = "priorities"
	viewInsights   = "insights"
	viewSnapshot   = "snapshot"
)

type Options struct {
	Logger             logger.Logger
	FetchTimeout       time.Duration
	AlertDaysThreshold int
	Now                func() time.Time
}

// Service es la cáscara de carga: trae registros del store, llama a los
// agregadores puros de health y nunca devuelve error al handler. Si un fetch
// falla, la vista se degrada a vacía y queda registrado en logs y métricas.
type Service struct {
	store        records.Store
	log          logger.Logger
	now          func() time.Time
	fetchTimeout time.Duration
	alertDays    int
	snapshots    *snapshotStore
}

func NewService(store records.Store, opts Options) *Service {
	s := &Service{
		store:        store,
		log:          opts.Logger,
		now:          opts.Now,
		fetchTimeout: opts.FetchTimeout,
		alertDays:    opts.AlertDaysThreshold,
		snapshots:    newSnapshotStore(),
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.fetchTimeout <= 0 {
		s.fetchTimeout = DefaultFetchTimeout
	}
	if s.alertDays <= 0 {
		s.alertDays = health.DefaultAlertDaysThreshold
	}
	return s
}

// Activity devuelve el feed unificado. limit <= 0 => sin corte total.
func (s *Service) Activity(ctx context.Context, userID string, limitPerSource, limit int) []health.ActivityItem {
	if limitPerSource <= 0 {
		limitPerSource = health.DefaultActivityLimitPerSource
	}
	b, ok := s.load(ctx, userID, viewActivity, loadRequest{
		need:  srcWeights | srcVisits | srcVaccinations | srcDocuments,
		limit: limitPerSource,
	})
	if !ok || len(b.pets) == 0 {
		return []health.ActivityItem{}
	}
	return health.Activities(health.NewPetIndex(b.pets), health.ActivitySources{
		Weights:      b.weights,
		Visits:       b.visits,
		Vaccinations: b.vaccinations,
		Documents:    b.documents,
	}, limitPerSource, limit)
}

// Calendar aplica los filtros. Los pet ids pedidos se recortan a las mascotas
// visibles del usuario antes de ir al store.
func (s *Service) Calendar(ctx context.Context, userID string, f health.EventFilters) []health.CalendarEvent {
	req := loadRequest{need: srcEvents, restrictTo: f.PetIDs}
	if f.IncludesType(health.EventTypeVaccination) {
		req.need |= srcVaccinations
	}
	if f.IncludesType(health.EventTypeTreatment) {
		req.need |= srcTreatments
		req.activeOnly = true
	}
	if f.IncludesType(health.EventTypeVetVisit) {
		req.need |= srcVisits
	}

	b, ok := s.load(ctx, userID, viewCalendar, req)
	if !ok || len(b.pets) == 0 {
		return []health.CalendarEvent{}
	}
	if len(f.PetIDs) > 0 {
		f.PetIDs = b.petIDs
		if len(f.PetIDs) == 0 {
			// Ningún id pedido es visible: un id que no matchea ninguna
			// mascota deja pasar solo los eventos globales.
			f.PetIDs = []string{noVisiblePet}
		}
	}
	return health.CalendarEvents(b.pets, health.CalendarSources{
		Vaccinations: b.vaccinations,
		Treatments:   b.treatments,
		Visits:       b.visits,
		Events:       b.events,
	}, f, s.now())
}

// Alerts usa el umbral configurado cuando days <= 0.
func (s *Service) Alerts(ctx context.Context, userID string, days int) []health.PriorityAlert {
	if days <= 0 {
		days = s.alertDays
	}
	b, ok := s.load(ctx, userID, viewAlerts, loadRequest{need: srcVaccinations | srcTreatments})
	if !ok || len(b.pets) == 0 {
		return []health.PriorityAlert{}
	}
	return health.Alerts(health.NewPetIndex(b.pets), b.vaccinations, b.treatments, days, s.now())
}

func (s *Service) Metrics(ctx context.Context, userID string) health.HealthMetrics {
	b, ok := s.load(ctx, userID, viewMetrics, loadRequest{
		need: srcVaccinations | srcTreatments | srcWeights | srcVisits,
	})
	if !ok || len(b.pets) == 0 {
		return health.EmptyMetrics()
	}
	return health.ComputeMetrics(b.pets, b.vaccinations, b.treatments, b.weights, b.visits, s.now())
}

func (s *Service) Priorities(ctx context.Context, userID string) []health.Priority {
	b, ok := s.load(ctx, userID, viewPriorities, loadRequest{
		need: srcVaccinations | srcTreatments | srcVisits,
	})
	if !ok || len(b.pets) == 0 {
		return []health.Priority{}
	}
	return health.DailyPriorities(health.NewPetIndex(b.pets), b.vaccinations, b.treatments, b.visits, s.now())
}

func (s *Service) Insights(ctx context.Context, userID string) []health.Insight {
	b, ok := s.load(ctx, userID, viewInsights, loadRequest{
		need: srcVaccinations | srcTreatments | srcWeights | srcVisits,
	})
	if !ok || len(b.pets) == 0 {
		return []health.Insight{}
	}
	now := s.now()
	m := health.ComputeMetrics(b.pets, b.vaccinations, b.treatments, b.weights, b.visits, now)
	return health.GenerateInsights(b.pets, b.vaccinations, b.treatments, m, now)
}

// Refresh arma el dashboard completo con un solo fetch y lo publica como
// snapshot del usuario si ningún ciclo más nuevo publicó antes.
// Devuelve el snapshot vigente después del intento.
func (s *Service) Refresh(ctx context.Context, userID string) Snapshot {
	gen := s.snapshots.begin(userID)

	snap := Snapshot{
		UserID:     userID,
		Generation: gen,
		Activity:   []health.ActivityItem{},
		Calendar:   []health.CalendarEvent{},
		Alerts:     []health.PriorityAlert{},
		Metrics:    health.EmptyMetrics(),
		Priorities: []health.Priority{},
		Insights:   []health.Insight{},
	}

	b, ok := s.load(ctx, userID, viewSnapshot, loadRequest{need: srcAll})
	now := s.now()
	snap.GeneratedAt = now

	if ok && len(b.pets) > 0 {
		ix := health.NewPetIndex(b.pets)
		snap.Activity = health.Activities(ix, health.ActivitySources{
			Weights:      b.weights,
			Visits:       b.visits,
			Vaccinations: b.vaccinations,
			Documents:    b.documents,
		}, health.DefaultActivityLimitPerSource, 0)
		snap.Calendar = health.CalendarEvents(b.pets, health.CalendarSources{
			Vaccinations: b.vaccinations,
			Treatments:   b.treatments,
			Visits:       b.visits,
			Events:       b.events,
		}, health.EventFilters{}, now)
		snap.Alerts = health.Alerts(ix, b.vaccinations, b.treatments, s.alertDays, now)
		snap.Metrics = health.ComputeMetrics(b.pets, b.vaccinations, b.treatments, b.weights, b.visits, now)
		snap.Priorities = health.DailyPriorities(ix, b.vaccinations, b.treatments, b.visits, now)
		snap.Insights = health.GenerateInsights(b.pets, b.vaccinations, b.treatments, snap.Metrics, now)
	}

	if !s.snapshots.publish(snap) {
		s.log.Debug("stale dashboard cycle discarded", map[string]any{
			"user_id":    userID,
			"generation": gen,
		})
	}
	current, _ := s.snapshots.get(userID)
	return current
}

// Snapshot devuelve el último snapshot publicado, sin ir al store.
func (s *Service) Snapshot(userID string) (Snapshot, bool) {
	return s.snapshots.get(userID)
}

// Ready pingea el store (readiness probe).
func (s *Service) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	return s.store.Ping(ctx)
}

// noVisiblePet nunca es id de una mascota (los stores siempre asignan uno).
const noVisiblePet = ""

type sources uint8

const (
	srcVaccinations sources = 1 << iota
	srcTreatments
	srcVisits
	srcWeights
	srcDocuments
	srcEvents

	srcAll = srcVaccinations | srcTreatments | srcVisits | srcWeights | srcDocuments | srcEvents
)

type loadRequest struct {
	need sources

	// restrictTo != nil => solo esas mascotas (intersección con las visibles).
	restrictTo []string

	limit      int
	activeOnly bool
}

type bundle struct {
	pets   []records.Pet
	petIDs []string

	vaccinations []records.Vaccination
	treatments   []records.Treatment
	visits       []records.MedicalVisit
	weights      []records.WeightEntry
	documents    []records.Document
	events       []records.Event
}

// load resuelve las mascotas visibles y después hace scatter/gather de las
// fuentes pedidas. ok=false significa que algo falló y la vista se degrada.
func (s *Service) load(ctx context.Context, userID, view string, req loadRequest) (bundle, bool) {
	start := time.Now()
	defer metrics.ObserveFetch(view, start)

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	var b bundle
	pets, err := s.store.ListPets(ctx, userID)
	if err != nil {
		s.fetchFailed(ctx, userID, view, "pets", err)
		return bundle{}, false
	}
	if len(pets) == 0 {
		return bundle{}, true
	}
	b.pets = pets
	b.petIDs = visiblePetIDs(pets, req.restrictTo)

	// Sin mascotas en la intersección solo quedan los eventos del usuario
	// (los globales pasan cualquier filtro de mascota).
	if len(b.petIDs) == 0 {
		req.need &= srcEvents
	}

	filter := records.Filter{PetIDs: b.petIDs, Limit: req.limit}

	g, gctx := errgroup.WithContext(ctx)
	if req.need&srcVaccinations != 0 {
		g.Go(func() error {
			out, err := s.store.ListVaccinations(gctx, filter)
			b.vaccinations = out
			return wrapSource("vaccinations", err)
		})
	}
	if req.need&srcTreatments != 0 {
		tf := filter
		tf.ActiveOnly = req.activeOnly
		g.Go(func() error {
			out, err := s.store.ListTreatments(gctx, tf)
			b.treatments = out
			return wrapSource("treatments", err)
		})
	}
	if req.need&srcVisits != 0 {
		g.Go(func() error {
			out, err := s.store.ListMedicalVisits(gctx, filter)
			b.visits = out
			return wrapSource("medical_visits", err)
		})
	}
	if req.need&srcWeights != 0 {
		g.Go(func() error {
			out, err := s.store.ListWeightEntries(gctx, filter)
			b.weights = out
			return wrapSource("weight_entries", err)
		})
	}
	if req.need&srcDocuments != 0 {
		g.Go(func() error {
			out, err := s.store.ListDocuments(gctx, filter)
			b.documents = out
			return wrapSource("documents", err)
		})
	}
	if req.need&srcEvents != 0 {
		g.Go(func() error {
			out, err := s.store.ListGenericEvents(gctx, userID)
			b.events = out
			return wrapSource("events", err)
		})
	}

	if err := g.Wait(); err != nil {
		source := "unknown"
		var se *sourceError
		if errors.As(err, &se) {
			source = se.source
		}
		s.fetchFailed(ctx, userID, view, source, err)
		return bundle{}, false
	}
	return b, true
}

// fetchFailed usa el logger del request si lo hay (lleva request_id).
func (s *Service) fetchFailed(ctx context.Context, userID, view, source string, err error) {
	metrics.FetchFailed(view)
	logger.FromContext(ctx, s.log).Error("dashboard fetch failed", map[string]any{
		"user_id": userID,
		"view":    view,
		"source":  source,
		"err":     err.Error(),
	})
}

// visiblePetIDs: sin restricción, todas las visibles. Con restricción, solo
// las pedidas que además son visibles (en el orden pedido, sin repetidos).
func visiblePetIDs(pets []records.Pet, restrictTo []string) []string {
	all := records.PetIDs(pets)
	if len(restrictTo) == 0 {
		return all
	}
	visible := make(map[string]struct{}, len(all))
	for _, id := range all {
		visible[id] = struct{}{}
	}
	out := make([]string, 0, len(restrictTo))
	for _, id := range restrictTo {
		if _, ok := visible[id]; !ok {
			continue
		}
		delete(visible, id)
		out = append(out, id)
	}
	return out
}

// sourceError identifica qué fuente cortó el errgroup.
type sourceError struct {
	source string
	err    error
}

func (e *sourceError) Error() string { return fmt.Sprintf("%s: %v", e.source, e.err) }
func (e *sourceError) Unwrap() error { return e.err }

func wrapSource(source string, err error) error {
	if err == nil {
		return nil
	}
	return &sourceError{source: source, err: err}
}
