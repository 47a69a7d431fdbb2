package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"pets-app/internal/domain/pets"
	"pets-app/internal/domain/posts"
	"pets-app/internal/platform/httpclient"
)

// Client habla con el API de pets (prefijo /api). Una llamada = un request con
// timeout fijo; sin retries, sin cola. Cada operación mapea el status code
// a un error de la taxonomía de errors.go, y nada más.
type Client struct {
	http *httpclient.Client
	now  func() time.Time
}

type Config struct {
	// BaseURL incluye el prefijo /api (ej: http://localhost:8080/api).
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, now: time.Now}, nil
}

// FetchPets lista todas las mascotas. 404 acá SÍ es error
// (la colección completa debería existir siempre).
func (c *Client) FetchPets(ctx context.Context) ([]pets.Pet, error) {
	resp, err := c.http.Do(ctx, http.MethodGet, "/pets", "", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return c.decodePetList(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return nil, fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

// FetchPetsByOwner lista las mascotas de un dueño. 404 => lista vacía:
// un dueño sin mascotas no es un error.
func (c *Client) FetchPetsByOwner(ctx context.Context, email string) ([]pets.Pet, error) {
	path := "/pets/owner/" + url.PathEscape(email)
	resp, err := c.http.Do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return c.decodePetList(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return []pets.Pet{}, nil
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return nil, fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

func (c *Client) CreatePet(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	body, err := json.Marshal(petToDTO(p, c.now()))
	if err != nil {
		return pets.Pet{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	resp, err := c.http.Do(ctx, http.MethodPost, "/pets", "application/json", bytes.NewReader(body))
	if err != nil {
		return pets.Pet{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusCreated:
		return c.decodePet(resp.Body)
	case resp.StatusCode == http.StatusBadRequest:
		return pets.Pet{}, ErrInvalidRequest
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return pets.Pet{}, fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return pets.Pet{}, fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

func (c *Client) UpdatePet(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	body, err := json.Marshal(petToDTO(p, c.now()))
	if err != nil {
		return pets.Pet{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	path := "/pets/" + url.PathEscape(p.ID)
	resp, err := c.http.Do(ctx, http.MethodPut, path, "application/json", bytes.NewReader(body))
	if err != nil {
		return pets.Pet{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return c.decodePet(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return pets.Pet{}, ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return pets.Pet{}, ErrInvalidRequest
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return pets.Pet{}, fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return pets.Pet{}, fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

func (c *Client) DeletePet(ctx context.Context, id string) error {
	resp, err := c.http.Do(ctx, http.MethodDelete, "/pets/"+url.PathEscape(id), "", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

// UploadPetImage sube la foto como multipart con un único part "image".
func (c *Client) UploadPetImage(ctx context.Context, id string, image []byte) error {
	contentType, body, err := multipartImage("image", "pet.jpg", image, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	path := "/pets/" + url.PathEscape(id) + "/image"
	resp, err := c.http.Do(ctx, http.MethodPost, path, contentType, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return ErrInvalidRequest
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

// FetchPetImage trae los bytes de la foto. 404 => nil sin error:
// que una mascota no tenga foto es un caso normal.
func (c *Client) FetchPetImage(ctx context.Context, id string) ([]byte, error) {
	path := "/pets/" + url.PathEscape(id) + "/image"
	resp, err := c.http.Do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return nil, fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

// FetchPosts trae una página del feed. 404 => página vacía.
func (c *Client) FetchPosts(ctx context.Context, page, size int) (PostPage, error) {
	path := fmt.Sprintf("/posts?page=%d&size=%d", page, size)
	resp, err := c.http.Do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return PostPage{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var dto postPageDTO
		if err := json.Unmarshal(resp.Body, &dto); err != nil {
			return PostPage{}, fmt.Errorf("%w: %v", ErrDecoding, err)
		}
		now := c.now()
		out := PostPage{
			Posts:      make([]posts.Post, 0, len(dto.Posts)),
			Page:       dto.CurrentPage,
			TotalItems: dto.TotalItems,
			TotalPages: dto.TotalPages,
		}
		for _, d := range dto.Posts {
			out.Posts = append(out.Posts, d.toPost(now))
		}
		return out, nil
	case resp.StatusCode == http.StatusNotFound:
		return PostPage{Posts: []posts.Post{}}, nil
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return PostPage{}, fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return PostPage{}, fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

// FetchPostsByPet lista los posts de una mascota. 404 => lista vacía.
func (c *Client) FetchPostsByPet(ctx context.Context, petID string) ([]posts.Post, error) {
	path := "/posts/pet/" + url.PathEscape(petID)
	resp, err := c.http.Do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var dtos []postDTO
		if err := json.Unmarshal(resp.Body, &dtos); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecoding, err)
		}
		now := c.now()
		out := make([]posts.Post, 0, len(dtos))
		for _, d := range dtos {
			out = append(out, d.toPost(now))
		}
		return out, nil
	case resp.StatusCode == http.StatusNotFound:
		return []posts.Post{}, nil
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return nil, fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

// CreatePost publica en el feed: multipart con campo petId y archivo image.
func (c *Client) CreatePost(ctx context.Context, petID string, image []byte) (posts.Post, error) {
	contentType, body, err := multipartImage("image", "post.jpg", image, map[string]string{
		"petId": petID,
	})
	if err != nil {
		return posts.Post{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	resp, err := c.http.Do(ctx, http.MethodPost, "/posts", contentType, body)
	if err != nil {
		return posts.Post{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusCreated:
		var dto postDTO
		if err := json.Unmarshal(resp.Body, &dto); err != nil {
			return posts.Post{}, fmt.Errorf("%w: %v", ErrDecoding, err)
		}
		return dto.toPost(c.now()), nil
	case resp.StatusCode == http.StatusBadRequest:
		return posts.Post{}, ErrInvalidRequest
	case resp.StatusCode == http.StatusNotFound:
		return posts.Post{}, ErrNotFound
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return posts.Post{}, fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return posts.Post{}, fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	resp, err := c.http.Do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), "", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return fmt.Errorf("%w: status=%d", ErrServer, resp.StatusCode)
	default:
		return fmt.Errorf("%w: status=%d", ErrInvalidResponse, resp.StatusCode)
	}
}

func (c *Client) decodePetList(raw []byte) ([]pets.Pet, error) {
	var dtos []petDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	now := c.now()
	out := make([]pets.Pet, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toPet(now))
	}
	return out, nil
}

func (c *Client) decodePet(raw []byte) (pets.Pet, error) {
	var dto petDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return pets.Pet{}, fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	return dto.toPet(c.now()), nil
}

// multipartImage arma un body multipart/form-data con campos simples
// más un archivo jpeg. Devuelve el Content-Type con boundary incluido.
func multipartImage(fileField, filename string, image []byte, fields map[string]string) (string, *bytes.Buffer, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", nil, err
		}
	}

	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return "", nil, err
	}
	if _, err := part.Write(image); err != nil {
		return "", nil, err
	}

	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), &buf, nil
}
