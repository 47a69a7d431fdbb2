package store

import (
	"context"
	"fmt"
	"time"

	"pets-app/internal/domain/pets"
	"pets-app/internal/domain/vaccinations"
	"pets-app/internal/ports/notify"
)

// AddVaccination agrega la vacuna a la lista de la mascota (la colección
// va keyed por pet id, en orden de inserción), persiste y agenda el
// recordatorio de próxima dosis si corresponde.
func (s *Store) AddVaccination(v vaccinations.Vaccination, petID string) vaccinations.Vaccination {
	ctx := context.Background()

	s.mu.Lock()
	if v.ID == "" {
		v.ID = s.newID()
	}
	s.vaccinations[petID] = append(s.vaccinations[petID], v)
	s.persistVaccinations(ctx)
	petName := s.petNameLocked(petID)
	s.mu.Unlock()

	s.scheduleVaccinationReminder(v, petName)
	s.notifyListeners()
	return v
}

func (s *Store) UpdateVaccination(v vaccinations.Vaccination, petID string) {
	ctx := context.Background()

	s.mu.Lock()
	list := s.vaccinations[petID]
	i := indexVaccination(list, v.ID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	list[i] = v
	s.persistVaccinations(ctx)
	petName := s.petNameLocked(petID)
	s.mu.Unlock()

	s.scheduler.Cancel("vaccination-" + v.ID)
	s.scheduleVaccinationReminder(v, petName)
	s.notifyListeners()
}

func (s *Store) DeleteVaccination(v vaccinations.Vaccination, petID string) {
	ctx := context.Background()

	s.mu.Lock()
	list := s.vaccinations[petID]
	kept := list[:0]
	for _, it := range list {
		if it.ID != v.ID {
			kept = append(kept, it)
		}
	}
	s.vaccinations[petID] = kept
	s.persistVaccinations(ctx)
	s.mu.Unlock()

	s.scheduler.Cancel("vaccination-" + v.ID)
	s.notifyListeners()
}

// VaccinationsForPet devuelve la lista de la mascota (vacía si no hay).
func (s *Store) VaccinationsForPet(petID string) []vaccinations.Vaccination {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.vaccinations[petID]
	out := make([]vaccinations.Vaccination, len(list))
	copy(out, list)
	return out
}

// PetVaccination es un par mascota/vacuna para la vista de vencidas.
type PetVaccination struct {
	Pet         pets.Pet
	Vaccination vaccinations.Vaccination
}

// OverdueVaccinations cruza pets × vaccinations y devuelve los pares
// con próxima dosis vencida respecto a now.
func (s *Store) OverdueVaccinations(now time.Time) []PetVaccination {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PetVaccination, 0)
	for _, p := range s.pets {
		for _, v := range s.vaccinations[p.ID] {
			if v.IsOverdue(now) {
				out = append(out, PetVaccination{Pet: p, Vaccination: v})
			}
		}
	}
	return out
}

// scheduleVaccinationReminder agenda el aviso en la fecha de próxima
// dosis. Sin NextDueDate no hay nada que recordar.
func (s *Store) scheduleVaccinationReminder(v vaccinations.Vaccination, petName string) {
	if v.NextDueDate == nil {
		return
	}
	s.scheduler.Schedule(notify.Reminder{
		Key:   "vaccination-" + v.ID,
		Title: "Recordatorio de Vacuna",
		Body:  fmt.Sprintf("%s necesita la vacuna %s en %s", petName, v.Name, v.Clinic),
		At:    *v.NextDueDate,
	})
}

func indexVaccination(list []vaccinations.Vaccination, id string) int {
	for i, v := range list {
		if v.ID == id {
			return i
		}
	}
	return -1
}
