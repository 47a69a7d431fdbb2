package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 15 * time.Second

// Client envuelve *http.Client con BaseURL y timeout fijo.
// No reintenta ni encola nada: cada request es una llamada y su respuesta.
// El mapeo de status codes a errores tipados es responsabilidad del caller
// (ver internal/adapters/remote), por eso Do devuelve el status crudo.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("httpclient: base url required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("httpclient: invalid base url: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Response es el resultado crudo de una llamada: status + body ya leído.
type Response struct {
	StatusCode int
	Body       []byte
}

// Do ejecuta un request contra BaseURL+path y devuelve status y body.
// - contentType: opcional; si no es vacío se manda como Content-Type.
// - body: opcional.
// Un error aquí significa fallo de transporte (o request mal construido),
// nunca un status no-2xx: eso lo decide el caller mirando StatusCode.
func (c *Client) Do(ctx context.Context, method, path, contentType string, body io.Reader) (Response, error) {
	if c == nil || c.HTTP == nil {
		return Response{}, errors.New("httpclient: nil client")
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, 16<<20) // imágenes incluidas, 16MB alcanza
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: read body: %w", err)
	}

	return Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = 1 << 20
	}
	return io.ReadAll(io.LimitReader(r, max))
}
