package vaccinations

import "time"

// Vaccination es una vacuna aplicada (o agendada) a una mascota.
// No guarda el petID: la colección del store va keyed por mascota.
type Vaccination struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"` // fecha de aplicación

	NextDueDate *time.Time `json:"nextDueDate,omitempty"`

	Veterinarian string `json:"veterinarian"`
	Clinic       string `json:"clinic"`
	Notes        string `json:"notes,omitempty"`

	// Una vacuna registrada se asume aplicada salvo que se indique lo contrario.
	IsCompleted bool `json:"isCompleted"`
}

// IsOverdue: hay próxima dosis y ya se pasó la fecha.
// Sin NextDueDate nunca está vencida.
func (v Vaccination) IsOverdue(now time.Time) bool {
	if v.NextDueDate == nil {
		return false
	}
	return now.After(*v.NextDueDate)
}

// DaysUntilDue son los días completos hasta la próxima dosis.
// (nil si no hay próxima dosis; negativo si ya venció)
func (v Vaccination) DaysUntilDue(now time.Time) *int {
	if v.NextDueDate == nil {
		return nil
	}
	d := int(v.NextDueDate.Sub(now) / (24 * time.Hour))
	return &d
}
