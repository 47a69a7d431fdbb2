package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pets-app/internal/domain/events"
	"pets-app/internal/ports/notify"
)

// AddEvent agrega el evento, persiste y agenda el recordatorio local
// con key "event-{id}". Los eventos no tienen sync remoto.
func (s *Store) AddEvent(e events.Event) events.Event {
	ctx := context.Background()

	s.mu.Lock()
	if e.ID == "" {
		e.ID = s.newID()
	}
	s.events = append(s.events, e)
	s.persistEvents(ctx)
	petName := s.petNameLocked(e.PetID)
	s.mu.Unlock()

	s.scheduleEventReminder(e, petName)
	s.notifyListeners()
	return e
}

// UpdateEvent reemplaza por id, persiste, y reagenda el recordatorio
// (cancela la key vieja y vuelve a agendar).
func (s *Store) UpdateEvent(e events.Event) {
	ctx := context.Background()

	s.mu.Lock()
	i := indexEvent(s.events, e.ID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.events[i] = e
	s.persistEvents(ctx)
	petName := s.petNameLocked(e.PetID)
	s.mu.Unlock()

	s.scheduler.Cancel("event-" + e.ID)
	s.scheduleEventReminder(e, petName)
	s.notifyListeners()
}

func (s *Store) DeleteEvent(e events.Event) {
	ctx := context.Background()

	s.mu.Lock()
	kept := s.events[:0]
	for _, it := range s.events {
		if it.ID != e.ID {
			kept = append(kept, it)
		}
	}
	s.events = kept
	s.persistEvents(ctx)
	s.mu.Unlock()

	s.scheduler.Cancel("event-" + e.ID)
	s.notifyListeners()
}

// Events devuelve una copia de todos los eventos.
func (s *Store) Events() []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]events.Event, len(s.events))
	copy(out, s.events)
	return out
}

// EventsForPet filtra por mascota, en orden de inserción.
func (s *Store) EventsForPet(petID string) []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]events.Event, 0)
	for _, e := range s.events {
		if e.PetID == petID {
			out = append(out, e)
		}
	}
	return out
}

// UpcomingEvents devuelve los eventos futuros respecto a now,
// ordenados por fecha ascendente.
func (s *Store) UpcomingEvents(now time.Time) []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]events.Event, 0)
	for _, e := range s.events {
		if e.IsUpcoming(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// scheduleEventReminder agenda el aviso una hora antes del evento,
// o en ReminderDate si viene explícito.
func (s *Store) scheduleEventReminder(e events.Event, petName string) {
	at := e.Date.Add(-time.Hour)
	if e.ReminderDate != nil {
		at = *e.ReminderDate
	}
	s.scheduler.Schedule(notify.Reminder{
		Key:   "event-" + e.ID,
		Title: "Recordatorio de Evento",
		Body:  fmt.Sprintf("%s para %s - %s", e.Title, petName, e.Location),
		At:    at,
	})
}

// petNameLocked: llamar con mu tomado.
func (s *Store) petNameLocked(petID string) string {
	if i := indexPet(s.pets, petID); i >= 0 {
		return s.pets[i].Name
	}
	return ""
}

func indexEvent(list []events.Event, id string) int {
	for i, e := range list {
		if e.ID == id {
			return i
		}
	}
	return -1
}
