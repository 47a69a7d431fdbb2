package posts

import "context"

type Repository interface {
	Create(ctx context.Context, p Post) error
	Update(ctx context.Context, p Post) error
	GetByID(ctx context.Context, id string) (Post, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Post, error)
	ListByPet(ctx context.Context, petID string) ([]Post, error)
}
