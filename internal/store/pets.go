package store

import (
	"context"

	"pets-app/internal/domain/pets"
	"pets-app/internal/domain/posts"
	"pets-app/internal/domain/vaccinations"
)

// AddPet agrega la mascota, persiste, y dispara el create remoto en
// background. Si el server asigna otro id, el registro local se parchea
// con ese id y se re-persiste; si el create falla, el id local queda
// para siempre (sin retry) y se anota el error.
func (s *Store) AddPet(p pets.Pet) pets.Pet {
	ctx := context.Background()

	s.mu.Lock()
	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.pets = append(s.pets, p)
	s.vaccinations[p.ID] = []vaccinations.Vaccination{}
	s.persistPets(ctx)
	s.persistVaccinations(ctx)
	s.mu.Unlock()
	s.notifyListeners()

	localID := p.ID
	toCreate := p
	s.goSync(func(ctx context.Context) {
		created, err := s.remote.CreatePet(ctx, toCreate)
		if err != nil {
			s.recordError("create pet", err)
			return
		}
		s.patchPetID(ctx, localID, created.ID)
	})

	return p
}

// patchPetID reemplaza el id local por el asignado por el server.
// Si el registro ya no está (lo borraron mientras el create viajaba),
// no hay nada que parchear y el resultado remoto se descarta.
func (s *Store) patchPetID(ctx context.Context, localID, serverID string) {
	if serverID == "" || serverID == localID {
		return
	}

	s.mu.Lock()
	i := indexPet(s.pets, localID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.pets[i].ID = serverID
	s.persistPets(ctx)
	s.mu.Unlock()
	s.notifyListeners()
}

// UpdatePet reemplaza el registro completo por id. No hay updates
// parciales a este nivel: el caller arma la mascota entera.
func (s *Store) UpdatePet(p pets.Pet) {
	ctx := context.Background()

	s.mu.Lock()
	i := indexPet(s.pets, p.ID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.pets[i] = p
	s.persistPets(ctx)
	s.mu.Unlock()
	s.notifyListeners()

	toUpdate := p
	s.goSync(func(ctx context.Context) {
		if _, err := s.remote.UpdatePet(ctx, toUpdate); err != nil {
			s.recordError("update pet", err)
		}
	})
}

// UpdatePetImage guarda la foto en el registro local y la sube al server
// en background.
func (s *Store) UpdatePetImage(p pets.Pet, image []byte) {
	if len(image) == 0 {
		return
	}
	p.ImageData = image
	s.UpdatePet(p)

	petID := p.ID
	s.goSync(func(ctx context.Context) {
		if err := s.remote.UploadPetImage(ctx, petID, image); err != nil {
			s.recordError("upload pet image", err)
		}
	})
}

// DeletePet borra la mascota y cascadea: se van sus eventos y su lista
// de vacunas (con sus recordatorios). Los posts de la mascota quedan:
// así se comporta el producto hoy, aunque deje posts huérfanos.
func (s *Store) DeletePet(p pets.Pet) {
	ctx := context.Background()

	s.mu.Lock()
	kept := s.pets[:0]
	for _, it := range s.pets {
		if it.ID != p.ID {
			kept = append(kept, it)
		}
	}
	s.pets = kept

	var droppedEvents []string
	keptEvents := s.events[:0]
	for _, e := range s.events {
		if e.PetID == p.ID {
			droppedEvents = append(droppedEvents, e.ID)
			continue
		}
		keptEvents = append(keptEvents, e)
	}
	s.events = keptEvents

	var droppedVaccinations []string
	for _, v := range s.vaccinations[p.ID] {
		droppedVaccinations = append(droppedVaccinations, v.ID)
	}
	delete(s.vaccinations, p.ID)

	s.persistPets(ctx)
	s.persistEvents(ctx)
	s.persistVaccinations(ctx)
	s.mu.Unlock()

	for _, id := range droppedEvents {
		s.scheduler.Cancel("event-" + id)
	}
	for _, id := range droppedVaccinations {
		s.scheduler.Cancel("vaccination-" + id)
	}
	s.notifyListeners()

	petID := p.ID
	s.goSync(func(ctx context.Context) {
		if err := s.remote.DeletePet(ctx, petID); err != nil {
			s.recordError("delete pet", err)
		}
	})
}

// Pets devuelve una copia de la colección.
func (s *Store) Pets() []pets.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]pets.Pet, len(s.pets))
	copy(out, s.pets)
	return out
}

// PetByID busca por id; ok=false si no está.
func (s *Store) PetByID(id string) (pets.Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexPet(s.pets, id); i >= 0 {
		return s.pets[i], true
	}
	return pets.Pet{}, false
}

func indexPet(list []pets.Pet, id string) int {
	for i, p := range list {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func indexPost(list []posts.Post, id string) int {
	for i, p := range list {
		if p.ID == id {
			return i
		}
	}
	return -1
}
