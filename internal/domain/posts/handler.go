package posts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PetDirectory es lo mínimo que el handler necesita del dominio de
// mascotas: validar que exista, obtener su nombre para el post, y
// resolver las mascotas de un dueño para el feed por dueño.
type PetDirectory interface {
	PetName(ctx context.Context, petID string) (string, error)
	OwnerPetIDs(ctx context.Context, ownerEmail string) ([]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, pets PetDirectory) {
	r.Route("/posts", func(pr chi.Router) {
		pr.Get("/", listPostsHandler(svc))
		pr.Post("/", createPostHandler(svc, pets))

		pr.Get("/pet/{petID}", listPostsByPetHandler(svc, pets))
		pr.Get("/pet/{petID}/count", countPostsByPetHandler(svc, pets))
		pr.Get("/owner/{email}", listPostsByOwnerHandler(svc, pets))

		pr.Get("/{postID}", getPostHandler(svc))
		pr.Delete("/{postID}", deletePostHandler(svc))
		pr.Get("/{postID}/image", getPostImageHandler(svc))
		pr.Post("/{postID}/like", likePostHandler(svc))
	})
}

const timestampLayout = "2006-01-02T15:04:05.000000"

type postResponse struct {
	ID           string   `json:"id"`
	PetID        string   `json:"petId"`
	PetName      string   `json:"petName"`
	PetImageData []byte   `json:"petImageData,omitempty"`
	ImageData    []byte   `json:"imageData,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	Likes        []string `json:"likes"`
}

type postPageResponse struct {
	Posts       []postResponse `json:"posts"`
	CurrentPage int            `json:"currentPage"`
	TotalItems  int            `json:"totalItems"`
	TotalPages  int            `json:"totalPages"`
}

func toPostResponse(p Post) postResponse {
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	return postResponse{
		ID:           p.ID,
		PetID:        p.PetID,
		PetName:      p.PetName,
		PetImageData: p.PetImageData,
		ImageData:    p.ImageData,
		CreatedAt:    p.CreatedAt.Format(timestampLayout),
		Likes:        likes,
	}
}

func toPostResponses(items []Post) []postResponse {
	out := make([]postResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPostResponse(p))
	}
	return out
}

// listPostsHandler pagina el feed: ?page=0&size=10.
func listPostsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 0)
		size := queryInt(r, "size", 10)

		result, err := svc.ListPage(r.Context(), page, size)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, postPageResponse{
			Posts:       toPostResponses(result.Posts),
			CurrentPage: result.CurrentPage,
			TotalItems:  result.TotalItems,
			TotalPages:  result.TotalPages,
		})
	}
}

// listPostsByPetHandler devuelve 404 si la mascota no existe; con
// mascota válida y sin posts responde lista vacía.
func listPostsByPetHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := pets.PetName(r.Context(), petID); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toPostResponses(items))
	}
}

// listPostsByOwnerHandler junta los posts de todas las mascotas del
// dueño. Dueño sin mascotas => lista vacía, no 404.
func listPostsByOwnerHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := pets.OwnerPetIDs(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		all := make([]Post, 0)
		for _, id := range ids {
			items, err := svc.ListByPet(r.Context(), id)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			all = append(all, items...)
		}
		sortByNewest(all)
		writeJSON(w, http.StatusOK, toPostResponses(all))
	}
}

func countPostsByPetHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := pets.PetName(r.Context(), petID); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		count, err := svc.CountByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"count": count})
	}
}

func getPostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPostResponse(p))
	}
}

// createPostHandler recibe multipart/form-data con campos "petId" e
// "image", igual que publica la app.
func createPostHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := r.FormValue("petId")
		if petID == "" {
			http.Error(w, "petId field required", http.StatusBadRequest)
			return
		}

		file, _, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image part required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		image, err := io.ReadAll(file)
		if err != nil || len(image) == 0 {
			http.Error(w, "image part required", http.StatusBadRequest)
			return
		}

		petName, err := pets.PetName(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		p, err := svc.Create(r.Context(), petID, petName, image)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, toPostResponse(p))
	}
}

func deletePostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "postID")); err != nil {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getPostImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "postID"))
		if err != nil || len(p.ImageData) == 0 {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(p.ImageData)
	}
}

// likePostHandler togglea el like del usuario ?user=; responde el post
// actualizado.
func likePostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		likerID := r.URL.Query().Get("user")
		p, err := svc.ToggleLike(r.Context(), chi.URLParam(r, "postID"), likerID)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, toPostResponse(p))
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, "user query param required", http.StatusBadRequest)
		default:
			http.Error(w, "post not found", http.StatusNotFound)
		}
	}
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// writeJSON vive duplicado acá y en pets/handler.go: dos copias de
// cuatro líneas no justifican un paquete httpx compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
