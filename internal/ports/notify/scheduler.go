package notify

import "time"

// Reminder es un recordatorio local pendiente.
// Key identifica el recordatorio para poder cancelarlo/reagendarlo
// (el store usa "event-{id}" y "vaccination-{id}").
type Reminder struct {
	Key   string
	Title string
	Body  string
	At    time.Time
}

// Scheduler agenda recordatorios locales. El mecanismo de entrega
// queda detrás de este port; el store solo conoce el contrato.
type Scheduler interface {
	Schedule(r Reminder)
	Cancel(key string)
	CancelAll()
}
