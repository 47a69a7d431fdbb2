package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name            string
	Species         string
	Breed           string
	BirthDate       time.Time
	Weight          float64
	Color           string
	MicrochipNumber string
	PhotoURL        string
	ImageData       []byte
	OwnerName       string
	OwnerPhone      string
	OwnerEmail      string
}

func (in CreateInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidInput
	}
	if in.BirthDate.IsZero() {
		return ErrInvalidInput
	}
	if in.Weight <= 0 {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.OwnerName) == "" || strings.TrimSpace(in.OwnerEmail) == "" {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	p := Pet{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		Species:         ParseSpecies(in.Species),
		Breed:           strings.TrimSpace(in.Breed),
		BirthDate:       in.BirthDate,
		Weight:          in.Weight,
		Color:           strings.TrimSpace(in.Color),
		MicrochipNumber: strings.TrimSpace(in.MicrochipNumber),
		PhotoURL:        strings.TrimSpace(in.PhotoURL),
		ImageData:       in.ImageData,
		OwnerName:       strings.TrimSpace(in.OwnerName),
		OwnerPhone:      strings.TrimSpace(in.OwnerPhone),
		OwnerEmail:      strings.TrimSpace(in.OwnerEmail),
		CreatedAt:       s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Update reemplaza el registro completo (no hay update parcial).
func (s *Service) Update(ctx context.Context, id string, in CreateInput) (Pet, error) {
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}

	p := Pet{
		ID:              current.ID,
		Name:            strings.TrimSpace(in.Name),
		Species:         ParseSpecies(in.Species),
		Breed:           strings.TrimSpace(in.Breed),
		BirthDate:       in.BirthDate,
		Weight:          in.Weight,
		Color:           strings.TrimSpace(in.Color),
		MicrochipNumber: strings.TrimSpace(in.MicrochipNumber),
		PhotoURL:        strings.TrimSpace(in.PhotoURL),
		ImageData:       in.ImageData,
		OwnerName:       strings.TrimSpace(in.OwnerName),
		OwnerPhone:      strings.TrimSpace(in.OwnerPhone),
		OwnerEmail:      strings.TrimSpace(in.OwnerEmail),
		CreatedAt:       current.CreatedAt,
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerEmail)
}

func (s *Service) ListBySpecies(ctx context.Context, species Species) ([]Pet, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Pet, 0)
	for _, p := range all {
		if p.Species == species {
			out = append(out, p)
		}
	}
	return out, nil
}

// PetName expone el nombre sin entregar el registro entero; lo usa el
// dominio de posts para congelar el nombre al publicar.
func (s *Service) PetName(ctx context.Context, id string) (string, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", ErrNotFound
	}
	return p.Name, nil
}

// OwnerPetIDs resuelve los ids de las mascotas de un dueño; lo usa el
// feed por dueño del dominio de posts.
func (s *Service) OwnerPetIDs(ctx context.Context, ownerEmail string) ([]string, error) {
	list, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// SetImage guarda la foto en el registro de la mascota.
func (s *Service) SetImage(ctx context.Context, id string, image []byte) error {
	if len(image) == 0 {
		return ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	p.ImageData = image
	return s.repo.Update(ctx, p)
}

// GetImage devuelve la foto; nil sin error si la mascota no tiene.
func (s *Service) GetImage(ctx context.Context, id string) ([]byte, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p.ImageData, nil
}
