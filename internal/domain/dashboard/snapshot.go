package dashboard

import (
	"sync"
	"time"

	"pet-health-record/internal/domain/health"
)

// Snapshot es el dashboard completo de un usuario tal como quedó publicado.
type Snapshot struct {
	UserID      string                 `json:"user_id"`
	Generation  uint64                 `json:"generation"`
	GeneratedAt time.Time              `json:"generated_at"`
	Activity    []health.ActivityItem  `json:"activity"`
	Calendar    []health.CalendarEvent `json:"calendar"`
	Alerts      []health.PriorityAlert `json:"alerts"`
	Metrics     health.HealthMetrics   `json:"metrics"`
	Priorities  []health.Priority      `json:"priorities"`
	Insights    []health.Insight       `json:"insights"`
}

// snapshotStore guarda el último snapshot por usuario y el contador de
// generaciones. Un ciclo solo publica si su generación es mayor que la del
// snapshot ya publicado: una respuesta lenta nunca pisa una más nueva.
type snapshotStore struct {
	mu        sync.Mutex
	next      map[string]uint64
	published map[string]Snapshot
}

func newSnapshotStore() *snapshotStore {
	return &snapshotStore{
		next:      make(map[string]uint64),
		published: make(map[string]Snapshot),
	}
}

// begin reserva la generación del ciclo que arranca.
func (s *snapshotStore) begin(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next[userID]++
	return s.next[userID]
}

func (s *snapshotStore) publish(snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.published[snap.UserID]; ok && cur.Generation >= snap.Generation {
		return false
	}
	s.published[snap.UserID] = snap
	return true
}

func (s *snapshotStore) get(userID string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.published[userID]
	return snap, ok
}
