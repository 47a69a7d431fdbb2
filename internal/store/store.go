package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pets-app/internal/adapters/remote"
	"pets-app/internal/adapters/storage/localstore"
	"pets-app/internal/domain/events"
	"pets-app/internal/domain/news"
	"pets-app/internal/domain/pets"
	"pets-app/internal/domain/posts"
	"pets-app/internal/domain/vaccinations"
	"pets-app/internal/platform/logger"
	"pets-app/internal/ports/notify"
)

// Remote son las operaciones del API que el store usa para el sync
// best-effort. Solo pets y posts tienen soporte remoto.
type Remote interface {
	FetchPets(ctx context.Context) ([]pets.Pet, error)
	CreatePet(ctx context.Context, p pets.Pet) (pets.Pet, error)
	UpdatePet(ctx context.Context, p pets.Pet) (pets.Pet, error)
	DeletePet(ctx context.Context, id string) error
	UploadPetImage(ctx context.Context, id string, image []byte) error

	FetchPosts(ctx context.Context, page, size int) (remote.PostPage, error)
	CreatePost(ctx context.Context, petID string, image []byte) (posts.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// Snapshots persiste colecciones completas bajo keys fijas.
// Load devuelve false (sin error) si no hay nada o el dato está corrupto.
type Snapshots interface {
	Save(ctx context.Context, key string, v any) error
	Load(ctx context.Context, key string, out any) bool
	Clear(ctx context.Context, key string) error
}

// Store es la fachada de datos de la app: dueña única de las colecciones
// en memoria, las persiste localmente en cada mutación y sincroniza
// pets/posts con el API remoto en background.
//
// Disciplina de concurrencia: un solo writer lógico. Toda mutación toma
// mu, y los callbacks de sync remoto vuelven a tomar mu antes de tocar
// estado compartido. Lo local nunca depende de que la red ande: primero
// memoria, después snapshot, recién al final el request remoto.
type Store struct {
	mu sync.Mutex

	pets         []pets.Pet
	events       []events.Event
	vaccinations map[string][]vaccinations.Vaccination // key: pet id
	newsItems    []news.News
	posts        []posts.Post

	loading   int // refreshes remotos en vuelo
	lastError string

	remote    Remote // nil => modo offline, no se sincroniza nada
	local     Snapshots
	scheduler notify.Scheduler
	log       logger.Logger

	now   func() time.Time
	newID func() string

	listeners []func()
	syncs     sync.WaitGroup
}

type Options struct {
	Remote    Remote
	Local     Snapshots
	Scheduler notify.Scheduler
	Log       logger.Logger
}

func New(opts Options) *Store {
	local := opts.Local
	if local == nil {
		local = nopSnapshots{}
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = nopScheduler{}
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	return &Store{
		vaccinations: make(map[string][]vaccinations.Vaccination),
		remote:       opts.Remote,
		local:        local,
		scheduler:    scheduler,
		log:          log,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Start corre la secuencia de arranque, siempre en este orden:
//  1. cargar los cinco snapshots locales,
//  2. sembrar datos de muestra si no hay mascotas,
//  3. disparar los refreshes remotos (pets y posts) en background.
//
// Los refreshes no bloquean el arranque: si fallan queda el estado
// local/semilla y un mensaje en LastError.
func (s *Store) Start(ctx context.Context) {
	s.loadAll(ctx)
	s.seedIfEmpty(ctx)
	s.Refresh()
}

func (s *Store) loadAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.local.Load(ctx, localstore.KeyPets, &s.pets)
	s.local.Load(ctx, localstore.KeyEvents, &s.events)
	s.local.Load(ctx, localstore.KeyVaccinations, &s.vaccinations)
	s.local.Load(ctx, localstore.KeyNews, &s.newsItems)
	s.local.Load(ctx, localstore.KeyPosts, &s.posts)

	if s.vaccinations == nil {
		s.vaccinations = make(map[string][]vaccinations.Vaccination)
	}
}

// ClearAll borra los snapshots y el estado en memoria, y vuelve a
// sembrar los datos de muestra.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	for _, key := range []string{
		localstore.KeyPets, localstore.KeyEvents, localstore.KeyVaccinations,
		localstore.KeyNews, localstore.KeyPosts,
	} {
		if err := s.local.Clear(ctx, key); err != nil {
			s.log.Warn("clear snapshot failed", map[string]any{"key": key, "err": err.Error()})
		}
	}
	s.pets = nil
	s.events = nil
	s.vaccinations = make(map[string][]vaccinations.Vaccination)
	s.newsItems = nil
	s.posts = nil
	s.mu.Unlock()

	s.seedIfEmpty(ctx)
	s.notifyListeners()
}

// Subscribe registra un callback que se invoca después de cada mutación.
// La capa de presentación observa por acá, nunca leyendo campos internos.
func (s *Store) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notifyListeners() {
	s.mu.Lock()
	ls := make([]func(), len(s.listeners))
	copy(ls, s.listeners)
	s.mu.Unlock()

	for _, fn := range ls {
		fn()
	}
}

// Loading indica si hay refreshes remotos en vuelo.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

// LastError es el último error de sync visible para UI.
// Es un slot único: un fallo posterior pisa al anterior.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// --- persistencia (llamar con mu tomado) ---

func (s *Store) persist(ctx context.Context, key string, v any) {
	if err := s.local.Save(ctx, key, v); err != nil {
		s.log.Warn("snapshot save failed", map[string]any{"key": key, "err": err.Error()})
	}
}

func (s *Store) persistPets(ctx context.Context)  { s.persist(ctx, localstore.KeyPets, s.pets) }
func (s *Store) persistEvents(ctx context.Context) {
	s.persist(ctx, localstore.KeyEvents, s.events)
}
func (s *Store) persistVaccinations(ctx context.Context) {
	s.persist(ctx, localstore.KeyVaccinations, s.vaccinations)
}
func (s *Store) persistNews(ctx context.Context) { s.persist(ctx, localstore.KeyNews, s.newsItems) }
func (s *Store) persistPosts(ctx context.Context) {
	s.persist(ctx, localstore.KeyPosts, s.posts)
}

type nopSnapshots struct{}

func (nopSnapshots) Save(context.Context, string, any) error { return nil }
func (nopSnapshots) Load(context.Context, string, any) bool  { return false }
func (nopSnapshots) Clear(context.Context, string) error     { return nil }

type nopScheduler struct{}

func (nopScheduler) Schedule(notify.Reminder) {}
func (nopScheduler) Cancel(string)            {}
func (nopScheduler) CancelAll()               {}
