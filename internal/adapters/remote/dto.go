package remote

import (
	"time"

	"pets-app/internal/domain/pets"
	"pets-app/internal/domain/posts"
)

// Formatos de fecha del wire: las fechas-calendario van como yyyy-MM-dd,
// los timestamps de posts con microsegundos.
const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000000"
)

// petDTO es la representación wire de Pet. Distinta del modelo de dominio:
// ids como string, birthDate como string, y age/ageInMonths derivados
// que el server incluye pero el cliente recalcula.
type petDTO struct {
	ID              string  `json:"id,omitempty"`
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
	Age             *int    `json:"age,omitempty"`
	AgeInMonths     *int    `json:"ageInMonths,omitempty"`
}

func petToDTO(p pets.Pet, now time.Time) petDTO {
	age := p.Age(now)
	months := p.AgeInMonths(now)
	return petDTO{
		ID:              p.ID,
		Name:            p.Name,
		Species:         string(p.Species),
		Breed:           p.Breed,
		BirthDate:       p.BirthDate.Format(dateLayout),
		Weight:          p.Weight,
		Color:           p.Color,
		MicrochipNumber: p.MicrochipNumber,
		PhotoURL:        p.PhotoURL,
		ImageData:       p.ImageData,
		OwnerName:       p.OwnerName,
		OwnerPhone:      p.OwnerPhone,
		OwnerEmail:      p.OwnerEmail,
		Age:             &age,
		AgeInMonths:     &months,
	}
}

// toPet convierte el DTO a dominio. Fecha no parseable => now:
// preferimos un dato raro a romper el refresh completo por un registro.
func (d petDTO) toPet(now time.Time) pets.Pet {
	birth, err := time.Parse(dateLayout, d.BirthDate)
	if err != nil {
		birth = now
	}
	return pets.Pet{
		ID:              d.ID,
		Name:            d.Name,
		Species:         pets.ParseSpecies(d.Species),
		Breed:           d.Breed,
		BirthDate:       birth,
		Weight:          d.Weight,
		Color:           d.Color,
		MicrochipNumber: d.MicrochipNumber,
		PhotoURL:        d.PhotoURL,
		ImageData:       d.ImageData,
		OwnerName:       d.OwnerName,
		OwnerPhone:      d.OwnerPhone,
		OwnerEmail:      d.OwnerEmail,
		CreatedAt:       now,
	}
}

type postDTO struct {
	ID           string   `json:"id,omitempty"`
	PetID        string   `json:"petId,omitempty"`
	PetName      string   `json:"petName,omitempty"`
	PetImageData []byte   `json:"petImageData,omitempty"`
	ImageData    []byte   `json:"imageData,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	Likes        []string `json:"likes,omitempty"`
}

func (d postDTO) toPost(now time.Time) posts.Post {
	created, err := time.Parse(timestampLayout, d.CreatedAt)
	if err != nil {
		created = now
	}
	likes := d.Likes
	if likes == nil {
		likes = []string{}
	}
	return posts.Post{
		ID:           d.ID,
		PetID:        d.PetID,
		PetName:      d.PetName,
		PetImageData: d.PetImageData,
		ImageData:    d.ImageData,
		CreatedAt:    created,
		Likes:        likes,
	}
}

// postPageDTO es la respuesta paginada de GET /posts.
type postPageDTO struct {
	Posts       []postDTO `json:"posts"`
	CurrentPage int       `json:"currentPage"`
	TotalItems  int       `json:"totalItems"`
	TotalPages  int       `json:"totalPages"`
}

// PostPage es el resultado paginado ya convertido a dominio.
type PostPage struct {
	Posts      []posts.Post
	Page       int
	TotalItems int
	TotalPages int
}
