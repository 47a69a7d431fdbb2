package store

import (
	"context"
	"sort"
	"time"

	"pets-app/internal/domain/news"
)

// AddNews agrega el aviso y persiste. Las noticias son locales:
// no hay sync remoto para esta colección.
func (s *Store) AddNews(n news.News) news.News {
	ctx := context.Background()

	s.mu.Lock()
	if n.ID == "" {
		n.ID = s.newID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	s.newsItems = append(s.newsItems, n)
	s.persistNews(ctx)
	s.mu.Unlock()

	s.notifyListeners()
	return n
}

func (s *Store) UpdateNews(n news.News) {
	ctx := context.Background()

	s.mu.Lock()
	i := indexNews(s.newsItems, n.ID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.newsItems[i] = n
	s.persistNews(ctx)
	s.mu.Unlock()

	s.notifyListeners()
}

// UpdateNewsImage guarda la imagen del aviso.
func (s *Store) UpdateNewsImage(n news.News, image []byte) {
	if len(image) == 0 {
		return
	}
	n.ImageData = image
	s.UpdateNews(n)
}

func (s *Store) DeleteNews(n news.News) {
	ctx := context.Background()

	s.mu.Lock()
	kept := s.newsItems[:0]
	for _, it := range s.newsItems {
		if it.ID != n.ID {
			kept = append(kept, it)
		}
	}
	s.newsItems = kept
	s.persistNews(ctx)
	s.mu.Unlock()

	s.notifyListeners()
}

// News devuelve una copia de la colección completa.
func (s *Store) News() []news.News {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]news.News, len(s.newsItems))
	copy(out, s.newsItems)
	return out
}

// ActiveNews devuelve los avisos vigentes respecto a now, con los de
// mayor prioridad primero.
func (s *Store) ActiveNews(now time.Time) []news.News {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]news.News, 0)
	for _, n := range s.newsItems {
		if n.IsCurrentlyActive(now) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

func indexNews(list []news.News, id string) int {
	for i, n := range list {
		if n.ID == id {
			return i
		}
	}
	return -1
}
