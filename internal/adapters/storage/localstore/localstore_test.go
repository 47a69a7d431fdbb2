package localstore

import (
	"bytes"
	"context"
	"reflect"
	"testing"
	"time"

	"gocloud.dev/blob/memblob"

	"pets-app/internal/domain/events"
	"pets-app/internal/domain/news"
	"pets-app/internal/domain/pets"
	"pets-app/internal/domain/posts"
	"pets-app/internal/domain/vaccinations"
	"pets-app/internal/platform/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	return New(bucket, logger.Nop())
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := []string{"a", "b", "c"}
	if err := s.Save(ctx, KeyPets, in); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	var out []string
	if !s.Load(ctx, KeyPets, &out) {
		t.Fatalf("expected Load to find data")
	}
	if len(out) != 3 || out[0] != "a" {
		t.Fatalf("round trip = %v", out)
	}
}

func TestLoad_MissingKeyIsFalse(t *testing.T) {
	s := newTestStore(t)

	var out []string
	if s.Load(context.Background(), KeyEvents, &out) {
		t.Fatalf("expected false for missing key")
	}
}

// Dato corrupto = dato ausente. Nunca un error que rompa el arranque.
func TestLoad_CorruptIsFalse(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	s := New(bucket, logger.Nop())
	ctx := context.Background()

	if err := bucket.WriteAll(ctx, KeyNews, []byte("{not json"), nil); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}

	var out []string
	if s.Load(ctx, KeyNews, &out) {
		t.Fatalf("expected false for corrupt snapshot")
	}
}

func TestSave_OverwritesPrevious(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, KeyPosts, []int{1, 2, 3}); err != nil {
		t.Fatalf("Save #1 error: %v", err)
	}
	if err := s.Save(ctx, KeyPosts, []int{9}); err != nil {
		t.Fatalf("Save #2 error: %v", err)
	}

	var out []int
	if !s.Load(ctx, KeyPosts, &out) {
		t.Fatalf("expected data")
	}
	if len(out) != 1 || out[0] != 9 {
		t.Fatalf("expected last snapshot to win, got %v", out)
	}
}

// -------------------------
// Round trip campo a campo de cada colección de dominio: el snapshot
// devuelve exactamente lo que se guardó, con y sin campos opcionales,
// y los opcionales vacíos no serializan su clave.
// Las fechas van en UTC fijo: lo que importa es el formato persistido.

func rawSnapshot(t *testing.T, s *Store, key string) []byte {
	t.Helper()

	b, err := s.bucket.ReadAll(context.Background(), key)
	if err != nil {
		t.Fatalf("read snapshot %s: %v", key, err)
	}
	return b
}

func assertKeysAbsent(t *testing.T, raw []byte, keys ...string) {
	t.Helper()

	for _, k := range keys {
		if bytes.Contains(raw, []byte(`"`+k+`"`)) {
			t.Fatalf("expected %q absent from snapshot: %s", k, raw)
		}
	}
}

func TestSnapshot_PetsFieldForField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := []pets.Pet{
		{
			ID:              "p1",
			Name:            "Dalila",
			Species:         pets.SpeciesDog,
			Breed:           "Maltés",
			BirthDate:       time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
			Weight:          3.5,
			Color:           "Blanco",
			MicrochipNumber: "985112003456789",
			PhotoURL:        "https://example.com/dalila.jpg",
			ImageData:       []byte{0xFF, 0xD8},
			OwnerName:       "María García",
			OwnerPhone:      "+52 55 1234 5678",
			OwnerEmail:      "maria@example.com",
			CreatedAt:       time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			// sin microchip, foto ni imagen
			ID:         "p2",
			Name:       "Michi",
			Species:    pets.SpeciesCat,
			Breed:      "Criollo",
			BirthDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Weight:     4.2,
			Color:      "Negro",
			OwnerName:  "María García",
			OwnerPhone: "+52 55 1234 5678",
			OwnerEmail: "maria@example.com",
			CreatedAt:  time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC),
		},
	}

	if err := s.Save(ctx, KeyPets, in); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	var out []pets.Pet
	if !s.Load(ctx, KeyPets, &out) {
		t.Fatalf("expected data")
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip:\n in=%+v\nout=%+v", in, out)
	}

	if err := s.Save(ctx, KeyPets, in[1:]); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	assertKeysAbsent(t, rawSnapshot(t, s, KeyPets),
		"microchipNumber", "photoUrl", "imageData")
}

func TestSnapshot_EventsFieldForField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	reminder := time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)
	in := []events.Event{
		{
			ID:           "e1",
			PetID:        "p1",
			Title:        "Revisión anual",
			Date:         time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
			Type:         events.TypeVeterinary,
			Description:  "Revisión general y vacunas",
			Location:     "Clínica Veterinaria Central",
			Contact:      "Dr. Carlos López",
			ReminderDate: &reminder,
		},
		{
			// sin descripción, lugar, contacto ni recordatorio
			ID:          "e2",
			PetID:       "p1",
			Title:       "Baño",
			Date:        time.Date(2026, 4, 1, 16, 0, 0, 0, time.UTC),
			Type:        events.TypeGrooming,
			IsCompleted: true,
		},
	}

	if err := s.Save(ctx, KeyEvents, in); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	var out []events.Event
	if !s.Load(ctx, KeyEvents, &out) {
		t.Fatalf("expected data")
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip:\n in=%+v\nout=%+v", in, out)
	}

	if err := s.Save(ctx, KeyEvents, in[1:]); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	assertKeysAbsent(t, rawSnapshot(t, s, KeyEvents),
		"description", "location", "contact", "reminderDate")
}

func TestSnapshot_VaccinationsFieldForField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	nextDue := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	full := vaccinations.Vaccination{
		ID:           "v1",
		Name:         "Rabia",
		Date:         time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
		NextDueDate:  &nextDue,
		Veterinarian: "Dr. Carlos López",
		Clinic:       "Clínica Veterinaria Central",
		Notes:        "refuerzo anual",
		IsCompleted:  true,
	}
	bare := vaccinations.Vaccination{
		// sin próxima dosis ni notas
		ID:           "v2",
		Name:         "Triple felina",
		Date:         time.Date(2026, 2, 1, 11, 0, 0, 0, time.UTC),
		Veterinarian: "Dr. Carlos López",
		Clinic:       "Clínica Veterinaria Central",
		IsCompleted:  true,
	}

	in := map[string][]vaccinations.Vaccination{
		"p1": {full, bare},
		"p2": {},
	}
	if err := s.Save(ctx, KeyVaccinations, in); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	out := map[string][]vaccinations.Vaccination{}
	if !s.Load(ctx, KeyVaccinations, &out) {
		t.Fatalf("expected data")
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip:\n in=%+v\nout=%+v", in, out)
	}

	if err := s.Save(ctx, KeyVaccinations, map[string][]vaccinations.Vaccination{"p1": {bare}}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	assertKeysAbsent(t, rawSnapshot(t, s, KeyVaccinations), "nextDueDate", "notes")
}

func TestSnapshot_NewsFieldForField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	endDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	in := []news.News{
		{
			ID:           "n1",
			Title:        "¡Promoción especial!",
			Content:      "20% de descuento en baños y cortes",
			Type:         news.TypePromotion,
			ImageURL:     "https://example.com/promo.jpg",
			ImageData:    []byte{0xFF, 0xD8},
			StartDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      &endDate,
			IsActive:     true,
			Priority:     2,
			ExternalLink: "https://example.com/promo",
			CreatedAt:    time.Date(2026, 3, 30, 9, 0, 0, 0, time.UTC),
		},
		{
			// ventana abierta, sin imagen ni link
			ID:        "n2",
			Title:     "Horario de verano",
			Content:   "Abrimos a las 8",
			Type:      news.TypeAnnouncement,
			StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
			Priority:  1,
			CreatedAt: time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC),
		},
	}

	if err := s.Save(ctx, KeyNews, in); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	var out []news.News
	if !s.Load(ctx, KeyNews, &out) {
		t.Fatalf("expected data")
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip:\n in=%+v\nout=%+v", in, out)
	}

	if err := s.Save(ctx, KeyNews, in[1:]); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	assertKeysAbsent(t, rawSnapshot(t, s, KeyNews),
		"imageUrl", "imageData", "endDate", "externalLink")
}

func TestSnapshot_PostsFieldForField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := []posts.Post{
		{
			ID:           "s1",
			PetID:        "p1",
			PetName:      "Dalila",
			PetImageData: []byte{0x01},
			ImageData:    []byte{0x02, 0x03},
			CreatedAt:    time.Date(2026, 2, 10, 18, 30, 0, 0, time.UTC),
			Likes:        []string{"u1", "u2"},
		},
		{
			// sin imágenes y sin likes: la lista vacía se guarda igual
			ID:        "s2",
			PetID:     "p1",
			PetName:   "Dalila",
			CreatedAt: time.Date(2026, 2, 11, 18, 30, 0, 0, time.UTC),
			Likes:     []string{},
		},
	}

	if err := s.Save(ctx, KeyPosts, in); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	var out []posts.Post
	if !s.Load(ctx, KeyPosts, &out) {
		t.Fatalf("expected data")
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip:\n in=%+v\nout=%+v", in, out)
	}

	if err := s.Save(ctx, KeyPosts, in[1:]); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	raw := rawSnapshot(t, s, KeyPosts)
	assertKeysAbsent(t, raw, "petImageData", "imageData")
	// likes no lleva omitempty: vacío serializa como []
	if !bytes.Contains(raw, []byte(`"likes":[]`)) {
		t.Fatalf("expected empty likes array in snapshot: %s", raw)
	}
}

func TestSnapshot_EmptyCollectionsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, KeyPets, []pets.Pet{}); err != nil {
		t.Fatalf("Save pets error: %v", err)
	}
	var outPets []pets.Pet
	if !s.Load(ctx, KeyPets, &outPets) {
		t.Fatalf("expected empty pets snapshot to load")
	}
	if len(outPets) != 0 {
		t.Fatalf("expected empty collection, got %+v", outPets)
	}

	if err := s.Save(ctx, KeyVaccinations, map[string][]vaccinations.Vaccination{}); err != nil {
		t.Fatalf("Save vaccinations error: %v", err)
	}
	outVacs := map[string][]vaccinations.Vaccination{}
	if !s.Load(ctx, KeyVaccinations, &outVacs) {
		t.Fatalf("expected empty vaccinations snapshot to load")
	}
	if len(outVacs) != 0 {
		t.Fatalf("expected empty map, got %+v", outVacs)
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, KeyVaccinations, map[string][]string{"p1": {"Rabia"}}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := s.Clear(ctx, KeyVaccinations); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	var out map[string][]string
	if s.Load(ctx, KeyVaccinations, &out) {
		t.Fatalf("expected no data after clear")
	}

	// limpiar lo que no existe no es error
	if err := s.Clear(ctx, KeyVaccinations); err != nil {
		t.Fatalf("Clear missing key error: %v", err)
	}
}
