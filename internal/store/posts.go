package store

import (
	"context"
	"sort"

	"pets-app/internal/domain/posts"
)

// AddPost publica en el feed: agrega local, persiste y dispara el
// create remoto. Igual que con pets, un id asignado por el server
// parchea al local; un fallo deja el post con su id local para siempre.
func (s *Store) AddPost(p posts.Post) posts.Post {
	ctx := context.Background()

	s.mu.Lock()
	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	s.posts = append(s.posts, p)
	s.persistPosts(ctx)
	s.mu.Unlock()
	s.notifyListeners()

	localID := p.ID
	petID := p.PetID
	image := p.ImageData
	s.goSync(func(ctx context.Context) {
		created, err := s.remote.CreatePost(ctx, petID, image)
		if err != nil {
			s.recordError("create post", err)
			return
		}
		s.patchPostID(ctx, localID, created.ID)
	})

	return p
}

func (s *Store) patchPostID(ctx context.Context, localID, serverID string) {
	if serverID == "" || serverID == localID {
		return
	}

	s.mu.Lock()
	i := indexPost(s.posts, localID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.posts[i].ID = serverID
	s.persistPosts(ctx)
	s.mu.Unlock()
	s.notifyListeners()
}

// UpdatePost reemplaza por id y persiste. Solo local: el feed remoto
// no tiene update.
func (s *Store) UpdatePost(p posts.Post) {
	ctx := context.Background()

	s.mu.Lock()
	i := indexPost(s.posts, p.ID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.posts[i] = p
	s.persistPosts(ctx)
	s.mu.Unlock()

	s.notifyListeners()
}

func (s *Store) DeletePost(p posts.Post) {
	ctx := context.Background()

	s.mu.Lock()
	kept := s.posts[:0]
	for _, it := range s.posts {
		if it.ID != p.ID {
			kept = append(kept, it)
		}
	}
	s.posts = kept
	s.persistPosts(ctx)
	s.mu.Unlock()
	s.notifyListeners()

	postID := p.ID
	s.goSync(func(ctx context.Context) {
		if err := s.remote.DeletePost(ctx, postID); err != nil {
			s.recordError("delete post", err)
		}
	})
}

// LikePost togglea el like de likerID sobre el post: si ya estaba lo
// quita, si no lo agrega. Dos likes seguidos del mismo id quedan en nada.
func (s *Store) LikePost(p posts.Post, likerID string) {
	p.Likes = posts.ToggleLike(p.Likes, likerID)
	s.UpdatePost(p)
}

// PostsForPet filtra por mascota, más recientes primero.
func (s *Store) PostsForPet(petID string) []posts.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]posts.Post, 0)
	for _, p := range s.posts {
		if p.PetID == petID {
			out = append(out, p)
		}
	}
	sortPostsByNewest(out)
	return out
}

// AllPosts devuelve el feed completo, más recientes primero.
func (s *Store) AllPosts() []posts.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]posts.Post, len(s.posts))
	copy(out, s.posts)
	sortPostsByNewest(out)
	return out
}

func sortPostsByNewest(list []posts.Post) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
