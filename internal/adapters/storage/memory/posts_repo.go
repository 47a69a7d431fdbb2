package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pets-app/internal/domain/posts"
)

type postRepo struct {
	mu   sync.RWMutex
	byID map[string]posts.Post
}

func NewPostRepo() posts.Repository {
	return &postRepo{
		byID: make(map[string]posts.Post),
	}
}

func (r *postRepo) Create(ctx context.Context, p posts.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("post already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *postRepo) Update(ctx context.Context, p posts.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return posts.Post{}, ErrNotFound
	}
	return p, nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *postRepo) List(ctx context.Context) ([]posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]posts.Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sortPostsByCreated(out)
	return out, nil
}

func (r *postRepo) ListByPet(ctx context.Context, petID string) ([]posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]posts.Post, 0)
	for _, p := range r.byID {
		if p.PetID == petID {
			out = append(out, p)
		}
	}
	sortPostsByCreated(out)
	return out, nil
}

func sortPostsByCreated(out []posts.Post) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}
