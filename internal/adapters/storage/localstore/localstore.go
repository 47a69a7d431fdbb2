package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"

	"pets-app/internal/platform/logger"
)

// Keys fijas de los snapshots, una por colección.
// Se mantienen los nombres del formato persistido original para poder
// migrar datos existentes tal cual.
const (
	KeyPets         = "SavedPets"
	KeyEvents       = "SavedEvents"
	KeyVaccinations = "SavedVaccinations"
	KeyNews         = "SavedNews"
	KeyPosts        = "SavedPosts"
)

// Store persiste snapshots completos de colecciones como blobs JSON.
// Contrato clave: cargar datos corruptos NUNCA es error — se trata como
// "no hay nada guardado". Un snapshot roto no puede tirar el arranque.
type Store struct {
	bucket *blob.Bucket
	log    logger.Logger
}

func New(bucket *blob.Bucket, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{bucket: bucket, log: log}
}

// OpenDir abre un Store sobre un directorio local (crea el bucket fileblob).
// El caller debe cerrar con Close.
func OpenDir(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("localstore: %w", err)
	}
	bucket, err := fileblob.OpenBucket(abs, nil)
	if err != nil {
		return nil, fmt.Errorf("localstore: open %s: %w", abs, err)
	}
	return New(bucket, logger.Nop()), nil
}

func (s *Store) Close() error {
	return s.bucket.Close()
}

// Save serializa la colección completa y pisa el snapshot anterior.
// Siempre snapshot completo: no hay persistencia incremental.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore: encode %s: %w", key, err)
	}
	if err := s.bucket.WriteAll(ctx, key, b, nil); err != nil {
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	return nil
}

// Load decodifica el snapshot en out y devuelve si había algo.
// Blob inexistente o JSON inválido => false, sin error (solo un log).
func (s *Store) Load(ctx context.Context, key string, out any) bool {
	b, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) != gcerrors.NotFound {
			s.log.Warn("snapshot read failed, treating as empty", map[string]any{
				"key": key,
				"err": err.Error(),
			})
		}
		return false
	}

	if err := json.Unmarshal(b, out); err != nil {
		s.log.Warn("snapshot corrupt, treating as empty", map[string]any{
			"key": key,
			"err": err.Error(),
		})
		return false
	}
	return true
}

// Clear borra el snapshot. Que no exista no es error.
func (s *Store) Clear(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return fmt.Errorf("localstore: delete %s: %w", key, err)
	}
	return nil
}
