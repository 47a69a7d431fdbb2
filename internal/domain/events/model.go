package events

import "time"

// EventType define los tipos de evento del calendario.
// @Enum veterinary, grooming, spa, training, vaccination, checkup, surgery, other
type EventType string

const (
	TypeVeterinary  EventType = "veterinary"
	TypeGrooming    EventType = "grooming"
	TypeSpa         EventType = "spa"
	TypeTraining    EventType = "training"
	TypeVaccination EventType = "vaccination"
	TypeCheckup     EventType = "checkup"
	TypeSurgery     EventType = "surgery"
	TypeOther       EventType = "other"
)

// ParseType tolera valores desconocidos: caen en "other".
func ParseType(s string) EventType {
	switch EventType(s) {
	case TypeVeterinary, TypeGrooming, TypeSpa, TypeTraining,
		TypeVaccination, TypeCheckup, TypeSurgery:
		return EventType(s)
	default:
		return TypeOther
	}
}

// Event es una cita o actividad agendada para una mascota.
type Event struct {
	ID    string `json:"id"`
	PetID string `json:"petId"` // FK obligatoria

	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Type  EventType `json:"eventType"`

	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Contact     string `json:"contact,omitempty"`

	IsCompleted  bool       `json:"isCompleted"`
	ReminderDate *time.Time `json:"reminderDate,omitempty"`
}

// IsUpcoming indica si el evento está en el futuro respecto a now.
func (e Event) IsUpcoming(now time.Time) bool {
	return e.Date.After(now)
}

// DaysUntilEvent son los días completos entre now y la fecha del evento.
// Negativo si el evento ya pasó.
func (e Event) DaysUntilEvent(now time.Time) int {
	return int(e.Date.Sub(now) / (24 * time.Hour))
}
