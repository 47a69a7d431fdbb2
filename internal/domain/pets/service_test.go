package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerEmail == ownerEmail {
			out = append(out, p)
		}
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func validInput() CreateInput {
	return CreateInput{
		Name:       "Dalila",
		Species:    "dog",
		Breed:      "Maltés",
		BirthDate:  time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
		Weight:     3.5,
		Color:      "Blanco",
		OwnerName:  "María García",
		OwnerPhone: "+52 55 1234 5678",
		OwnerEmail: "maria@example.com",
	}
}

func TestService_Create_SetsIDAndCreatedAt(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if p.CreatedAt != now {
		t.Fatalf("expected CreatedAt to be now")
	}
	if p.Species != SpeciesDog {
		t.Fatalf("expected species dog, got %s", p.Species)
	}
	if _, ok := repo.byID[p.ID]; !ok {
		t.Fatalf("expected pet persisted in repo")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := map[string]func(*CreateInput){
		"empty name":      func(in *CreateInput) { in.Name = "  " },
		"zero birth date": func(in *CreateInput) { in.BirthDate = time.Time{} },
		"zero weight":     func(in *CreateInput) { in.Weight = 0 },
		"negative weight": func(in *CreateInput) { in.Weight = -1 },
		"no owner name":   func(in *CreateInput) { in.OwnerName = "" },
		"no owner email":  func(in *CreateInput) { in.OwnerEmail = "" },
	}

	for name, mutate := range cases {
		in := validInput()
		mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestService_Update_PreservesCreatedAt(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return created }

	p, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	svc.now = func() time.Time { return created.Add(time.Hour) }

	in := validInput()
	in.Name = "Dalila II"
	updated, err := svc.Update(context.Background(), p.ID, in)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Name != "Dalila II" {
		t.Fatalf("expected updated name, got %s", updated.Name)
	}
	if updated.CreatedAt != created {
		t.Fatalf("expected CreatedAt preserved across update")
	}
}

func TestService_Update_UnknownID(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Update(context.Background(), "nope", validInput()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_ListBySpecies(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	dog := validInput()
	if _, err := svc.Create(context.Background(), dog); err != nil {
		t.Fatalf("Create dog error: %v", err)
	}

	cat := validInput()
	cat.Name = "Misu"
	cat.Species = "cat"
	if _, err := svc.Create(context.Background(), cat); err != nil {
		t.Fatalf("Create cat error: %v", err)
	}

	got, err := svc.ListBySpecies(context.Background(), SpeciesCat)
	if err != nil {
		t.Fatalf("ListBySpecies error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Misu" {
		t.Fatalf("expected only Misu, got %#v", got)
	}
}

func TestService_SetImage_RequiresData(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.SetImage(context.Background(), p.ID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty image, got %v", err)
	}

	if err := svc.SetImage(context.Background(), p.ID, []byte{0xFF, 0xD8}); err != nil {
		t.Fatalf("SetImage error: %v", err)
	}

	img, err := svc.GetImage(context.Background(), p.ID)
	if err != nil || len(img) != 2 {
		t.Fatalf("GetImage = %v, %v", img, err)
	}
}
