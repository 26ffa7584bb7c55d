// Package storage guarda los artefactos de los reportes en disco o en un
// bucket compatible con S3.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
)

var _ report.ArtifactStore = (*LocalStore)(nil)

// LocalStore escribe bajo un directorio base.
type LocalStore struct {
	dir string
}

// NewLocalStore crea el directorio si no existe.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save escribe el archivo y devuelve su ruta.
func (s *LocalStore) Save(_ context.Context, key string, a *report.Artifact) (string, error) {
	// la raíz ficticia impide que la clave salga del directorio base
	clean := filepath.Clean("/" + key)
	path := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("storage: escribir %s: %w", path, err)
	}
	return path, nil
}
