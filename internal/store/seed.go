package store

import (
	"context"
	"fmt"
	"time"

	"pets-app/internal/domain/events"
	"pets-app/internal/domain/news"
	"pets-app/internal/domain/pets"
	"pets-app/internal/domain/posts"
	"pets-app/internal/domain/vaccinations"
	"pets-app/internal/ports/notify"
)

// seedIfEmpty siembra los datos de muestra del primer arranque:
// una mascota, una vacuna, un evento, un aviso y dos posts.
// Solo corre si no hay mascotas (ni persistidas ni en memoria).
// Las semillas no se empujan al remoto: el refresh de arranque
// las pisaría igual si el server responde.
func (s *Store) seedIfEmpty(ctx context.Context) {
	s.mu.Lock()
	if len(s.pets) > 0 {
		s.mu.Unlock()
		return
	}

	now := s.now()

	pet := pets.Pet{
		ID:         s.newID(),
		Name:       "Dalila",
		Species:    pets.SpeciesDog,
		Breed:      "Maltés",
		BirthDate:  now.AddDate(-2, 0, 0),
		Weight:     3.5,
		Color:      "Blanco",
		OwnerName:  "María García",
		OwnerPhone: "+52 55 1234 5678",
		OwnerEmail: "maria@example.com",
		CreatedAt:  now,
	}
	s.pets = append(s.pets, pet)

	nextDue := now.AddDate(0, 6, 0)
	vac := vaccinations.Vaccination{
		ID:           s.newID(),
		Name:         "Rabia",
		Date:         now.AddDate(0, -6, 0),
		NextDueDate:  &nextDue,
		Veterinarian: "Dr. Carlos López",
		Clinic:       "Clínica Veterinaria Central",
		IsCompleted:  true,
	}
	s.vaccinations[pet.ID] = []vaccinations.Vaccination{vac}

	ev := events.Event{
		ID:          s.newID(),
		PetID:       pet.ID,
		Title:       "Revisión anual",
		Date:        now.AddDate(0, 0, 7),
		Type:        events.TypeVeterinary,
		Description: "Revisión general y vacunas",
		Location:    "Clínica Veterinaria Central",
		Contact:     "Dr. Carlos López",
	}
	s.events = append(s.events, ev)

	endDate := now.AddDate(0, 0, 14)
	s.newsItems = append(s.newsItems, news.News{
		ID:        s.newID(),
		Title:     "¡Promoción especial!",
		Content:   "20% de descuento en baños y cortes de pelo para perros grandes",
		Type:      news.TypePromotion,
		StartDate: now,
		EndDate:   &endDate,
		IsActive:  true,
		Priority:  1,
		CreatedAt: now,
	})

	for i := 0; i < 2; i++ {
		s.posts = append(s.posts, posts.Post{
			ID:        s.newID(),
			PetID:     pet.ID,
			PetName:   pet.Name,
			CreatedAt: now,
			Likes:     []string{},
		})
	}

	s.persistPets(ctx)
	s.persistEvents(ctx)
	s.persistVaccinations(ctx)
	s.persistNews(ctx)
	s.persistPosts(ctx)
	s.mu.Unlock()

	// mismos recordatorios que hubiera agendado el alta normal
	s.scheduler.Schedule(notify.Reminder{
		Key:   "vaccination-" + vac.ID,
		Title: "Recordatorio de Vacuna",
		Body:  fmt.Sprintf("%s necesita la vacuna %s en %s", pet.Name, vac.Name, vac.Clinic),
		At:    nextDue,
	})
	s.scheduler.Schedule(notify.Reminder{
		Key:   "event-" + ev.ID,
		Title: "Recordatorio de Evento",
		Body:  fmt.Sprintf("%s para %s - %s", ev.Title, pet.Name, ev.Location),
		At:    ev.Date.Add(-time.Hour),
	})
}
