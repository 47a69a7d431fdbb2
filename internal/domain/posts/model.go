package posts

import "time"

// Post es una publicación del feed social.
// PetName y PetImageData se copian al crear el post y no se
// mantienen sincronizados si la mascota cambia después.
type Post struct {
	ID    string `json:"id"`
	PetID string `json:"petId"`

	PetName      string `json:"petName"`
	PetImageData []byte `json:"petImageData,omitempty"`

	ImageData []byte    `json:"imageData,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	// IDs de quienes dieron like, en orden de llegada.
	Likes []string `json:"likes"`
}

func (p Post) LikeCount() int {
	return len(p.Likes)
}

// HasLike indica si likerID ya dio like.
func (p Post) HasLike(likerID string) bool {
	for _, id := range p.Likes {
		if id == likerID {
			return true
		}
	}
	return false
}

// ToggleLike agrega el like si no estaba y lo quita si ya estaba.
// Dos toggles seguidos del mismo id dejan la lista como al principio.
func ToggleLike(likes []string, likerID string) []string {
	for i, id := range likes {
		if id == likerID {
			out := make([]string, 0, len(likes)-1)
			out = append(out, likes[:i]...)
			out = append(out, likes[i+1:]...)
			return out
		}
	}
	out := make([]string, 0, len(likes)+1)
	out = append(out, likes...)
	return append(out, likerID)
}
