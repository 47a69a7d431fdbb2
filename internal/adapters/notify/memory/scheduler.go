package memory

import (
	"sync"

	"pets-app/internal/platform/logger"
	"pets-app/internal/ports/notify"
)

// Scheduler guarda los recordatorios pendientes en memoria y los loggea.
// Sirve para petsctl y para tests; un cliente real enchufaría acá
// el centro de notificaciones de su plataforma.
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]notify.Reminder
	log     logger.Logger
}

func NewScheduler(log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		pending: make(map[string]notify.Reminder),
		log:     log,
	}
}

func (s *Scheduler) Schedule(r notify.Reminder) {
	if r.Key == "" {
		return
	}
	s.mu.Lock()
	s.pending[r.Key] = r
	s.mu.Unlock()

	s.log.Debug("reminder scheduled", map[string]any{
		"key": r.Key,
		"at":  r.At,
	})
}

func (s *Scheduler) Cancel(key string) {
	s.mu.Lock()
	delete(s.pending, key)
	s.mu.Unlock()
}

func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	s.pending = make(map[string]notify.Reminder)
	s.mu.Unlock()
}

// Pending devuelve una copia de lo agendado (para inspección en tests).
func (s *Scheduler) Pending() map[string]notify.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]notify.Reminder, len(s.pending))
	for k, v := range s.pending {
		out[k] = v
	}
	return out
}
