package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Pet, error)
}
