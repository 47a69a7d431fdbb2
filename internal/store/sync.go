package store

import (
	"context"

	"pets-app/internal/adapters/remote"
)

// Cuánto pide el refresh de posts. Mismo default que el cliente original.
const postsPageSize = 10

// Refresh vuelve a pedir pets y posts al API. Es el mismo camino que
// corre el arranque y el retry manual desde UI. Fire-and-forget: cada
// refresh corre solo, sin orden garantizado entre ellos.
func (s *Store) Refresh() {
	s.goSync(s.refreshPets)
	s.goSync(s.refreshPosts)
}

// goSync despacha una tarea de sync en background. Sin cola y sin
// cancelación: cada tarea es independiente y reporta solo vía lastError.
func (s *Store) goSync(fn func(ctx context.Context)) {
	if s.remote == nil {
		return
	}
	s.syncs.Add(1)
	go func() {
		defer s.syncs.Done()
		fn(context.Background())
	}()
}

// refreshPets reemplaza la colección completa con lo que diga el server
// y re-persiste. Si falla, el estado cargado de local/semilla queda
// como fuente de verdad y solo se anota el error.
func (s *Store) refreshPets(ctx context.Context) {
	s.setLoading(1)
	defer s.setLoading(-1)

	list, err := s.remote.FetchPets(ctx)
	if err != nil {
		s.recordError("refresh pets", err)
		return
	}

	s.mu.Lock()
	s.pets = list
	s.persistPets(ctx)
	s.mu.Unlock()
	s.notifyListeners()
}

func (s *Store) refreshPosts(ctx context.Context) {
	s.setLoading(1)
	defer s.setLoading(-1)

	page, err := s.remote.FetchPosts(ctx, 0, postsPageSize)
	if err != nil {
		s.recordError("refresh posts", err)
		return
	}

	s.mu.Lock()
	s.posts = page.Posts
	s.persistPosts(ctx)
	s.mu.Unlock()
	s.notifyListeners()
}

func (s *Store) setLoading(delta int) {
	s.mu.Lock()
	s.loading += delta
	s.mu.Unlock()
}

// recordError anota el mensaje de usuario en el slot único de error.
// Nunca re-lanza: el fallo remoto no toca el estado local.
func (s *Store) recordError(op string, err error) {
	msg := remote.UserMessage(err)

	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()

	s.log.Warn("remote sync failed", map[string]any{"op": op, "err": err.Error()})
	s.notifyListeners()
}

// WaitSyncs espera a que terminen las tareas de sync en vuelo.
// Existe para tests y shutdown ordenado; el flujo normal no lo usa.
func (s *Store) WaitSyncs() {
	s.syncs.Wait()
}
