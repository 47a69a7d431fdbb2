package posts

import (
	"context"
	"errors"
	"sort"
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

// Create publica un post. PetName se copia acá y queda congelado:
// si la mascota se renombra después, el post conserva el nombre viejo.
func (s *Service) Create(ctx context.Context, petID, petName string, image []byte) (Post, error) {
	if strings.TrimSpace(petID) == "" {
		return Post{}, ErrInvalidInput
	}

	p := Post{
		ID:        uuid.NewString(),
		PetID:     petID,
		PetName:   petName,
		ImageData: image,
		CreatedAt: s.now(),
		Likes:     []string{},
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Post{}, ErrInvalidInput
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

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Post, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	sortByNewest(items)
	return items, nil
}

// PageResult es una página del feed, más recientes primero.
type PageResult struct {
	Posts       []Post
	CurrentPage int
	TotalItems  int
	TotalPages  int
}

// ListPage pagina el feed completo ordenado por fecha descendente.
// page arranca en 0; size <= 0 cae al default 10.
func (s *Service) ListPage(ctx context.Context, page, size int) (PageResult, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return PageResult{}, err
	}
	sortByNewest(all)

	total := len(all)
	totalPages := (total + size - 1) / size

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return PageResult{
		Posts:       all[start:end],
		CurrentPage: page,
		TotalItems:  total,
		TotalPages:  totalPages,
	}, nil
}

// ToggleLike aplica el like idempotente de likerID y persiste.
func (s *Service) ToggleLike(ctx context.Context, postID, likerID string) (Post, error) {
	if strings.TrimSpace(likerID) == "" {
		return Post{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return Post{}, ErrNotFound
	}

	p.Likes = ToggleLike(p.Likes, likerID)
	if err := s.repo.Update(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) CountByPet(ctx context.Context, petID string) (int, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func sortByNewest(list []Post) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
