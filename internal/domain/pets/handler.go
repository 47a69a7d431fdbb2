package pets

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		pr.Get("/owner/{email}", listPetsByOwnerHandler(svc))
		pr.Get("/species/{species}", listPetsBySpeciesHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))

		pr.Post("/{petID}/image", uploadPetImageHandler(svc))
		pr.Get("/{petID}/image", getPetImageHandler(svc))
	})
}

// petRequest es el DTO wire de una mascota entrante (create y update
// usan el mismo body). Fechas como yyyy-MM-dd, ids como string.
type petRequest struct {
	Name            string  `json:"name"`
	Species         string  `json:"species"`
	Breed           string  `json:"breed"`
	BirthDate       string  `json:"birthDate"`
	Weight          float64 `json:"weight"`
	Color           string  `json:"color"`
	MicrochipNumber string  `json:"microchipNumber"`
	PhotoURL        string  `json:"photoUrl"`
	ImageData       []byte  `json:"imageData"`
	OwnerName       string  `json:"ownerName"`
	OwnerPhone      string  `json:"ownerPhone"`
	OwnerEmail      string  `json:"ownerEmail"`
}

type petResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Species         string  `json:"species"`
	Breed           string  `json:"breed"`
	BirthDate       string  `json:"birthDate"`
	Weight          float64 `json:"weight"`
	Color           string  `json:"color"`
	MicrochipNumber string  `json:"microchipNumber,omitempty"`
	PhotoURL        string  `json:"photoUrl,omitempty"`
	ImageData       []byte  `json:"imageData,omitempty"`
	OwnerName       string  `json:"ownerName"`
	OwnerPhone      string  `json:"ownerPhone"`
	OwnerEmail      string  `json:"ownerEmail"`
	Age             int     `json:"age"`
	AgeInMonths     int     `json:"ageInMonths"`
}

func (req petRequest) toInput() (CreateInput, error) {
	birth, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return CreateInput{}, err
	}
	return CreateInput{
		Name:            req.Name,
		Species:         req.Species,
		Breed:           req.Breed,
		BirthDate:       birth,
		Weight:          req.Weight,
		Color:           req.Color,
		MicrochipNumber: req.MicrochipNumber,
		PhotoURL:        req.PhotoURL,
		ImageData:       req.ImageData,
		OwnerName:       req.OwnerName,
		OwnerPhone:      req.OwnerPhone,
		OwnerEmail:      req.OwnerEmail,
	}, nil
}

func toPetResponse(p Pet, now time.Time) petResponse {
	return petResponse{
		ID:              p.ID,
		Name:            p.Name,
		Species:         string(p.Species),
		Breed:           p.Breed,
		BirthDate:       p.BirthDate.Format("2006-01-02"),
		Weight:          p.Weight,
		Color:           p.Color,
		MicrochipNumber: p.MicrochipNumber,
		PhotoURL:        p.PhotoURL,
		ImageData:       p.ImageData,
		OwnerName:       p.OwnerName,
		OwnerPhone:      p.OwnerPhone,
		OwnerEmail:      p.OwnerEmail,
		Age:             p.Age(now),
		AgeInMonths:     p.AgeInMonths(now),
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

// listPetsByOwnerHandler devuelve 404 si el dueño no tiene mascotas;
// el cliente lo trata como lista vacía.
func listPetsByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := chi.URLParam(r, "email")
		items, err := svc.ListByOwner(r.Context(), email)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if len(items) == 0 {
			http.Error(w, "no pets for owner", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func listPetsBySpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		species := ParseSpecies(chi.URLParam(r, "species"))
		items, err := svc.ListBySpecies(r.Context(), species)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			http.Error(w, "birthDate must be yyyy-MM-dd", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p, time.Now()))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p, time.Now()))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			http.Error(w, "birthDate must be yyyy-MM-dd", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), in)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, toPetResponse(p, time.Now()))
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "pet not found", http.StatusNotFound)
		}
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadPetImageHandler recibe multipart/form-data con un part "image".
func uploadPetImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image part required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil || len(data) == 0 {
			http.Error(w, "image part required", http.StatusBadRequest)
			return
		}

		if err := svc.SetImage(r.Context(), chi.URLParam(r, "petID"), data); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// getPetImageHandler devuelve los bytes crudos; 404 si no hay foto.
func getPetImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := svc.GetImage(r.Context(), chi.URLParam(r, "petID"))
		if err != nil || len(data) == 0 {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func toPetResponses(items []Pet) []petResponse {
	now := time.Now()
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p, now))
	}
	return out
}

// writeJSON está duplicado a propósito en pets y posts (ver nota en
// posts/handler.go): todavía no amerita un helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
