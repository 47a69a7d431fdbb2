package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pets-app/internal/adapters/storage/memory"
	pg "pets-app/internal/adapters/storage/postgres"
	"pets-app/internal/domain/pets"
	"pets-app/internal/domain/posts"
	"pets-app/internal/middleware"
	"pets-app/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: logger de requests. Nil => silencioso (tests).
	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		petRepo  pets.Repository
		postRepo posts.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		postRepo = pg.NewPostsRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		postRepo = mem.NewPostRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	postsSvc := posts.NewService(postRepo)

	// Rutas por módulo, bajo /api como espera el cliente
	r.Route("/api", func(api chi.Router) {
		pets.RegisterRoutes(api, petsSvc)
		posts.RegisterRoutes(api, postsSvc, petsSvc)
	})

	return r
}
