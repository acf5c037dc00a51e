// Package storage guarda archivos subidos (logo de la tienda) en el disco local.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jhoicas/shop-admin/internal/application/billing"
	"github.com/jhoicas/shop-admin/internal/application/settings"
)

var (
	_ settings.LogoStore  = (*LocalLogoStore)(nil)
	_ billing.LogoLocator = (*LocalLogoStore)(nil)
)

// LocalLogoStore escribe en dir y publica bajo publicPrefix (servido como estático por Fiber).
type LocalLogoStore struct {
	dir          string
	publicPrefix string
}

// NewLocalLogoStore crea el directorio si no existe.
func NewLocalLogoStore(dir, publicPrefix string) (*LocalLogoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	return &LocalLogoStore{dir: dir, publicPrefix: "/" + strings.Trim(publicPrefix, "/")}, nil
}

// Dir directorio local de los archivos.
func (s *LocalLogoStore) Dir() string { return s.dir }

// PublicPrefix prefijo URL de los archivos.
func (s *LocalLogoStore) PublicPrefix() string { return s.publicPrefix }

// Save escribe el archivo de forma atómica (temporal + rename) y devuelve su URL pública.
// name ya debe venir saneado; se rechaza cualquier separador de ruta.
func (s *LocalLogoStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("storage: nombre de archivo inválido %q", name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("storage: archivo temporal: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("storage: escribir %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: cerrar %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("storage: permisos %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("storage: mover %s: %w", name, err)
	}
	return path.Join(s.publicPrefix, name), nil
}

// LocalPath traduce una URL pública de este store a la ruta del archivo, si existe.
func (s *LocalLogoStore) LocalPath(logoURL string) (string, bool) {
	prefix := s.publicPrefix + "/"
	if !strings.HasPrefix(logoURL, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(logoURL, prefix)
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	p := filepath.Join(s.dir, name)
	if info, err := os.Stat(p); err != nil || info.IsDir() {
		return "", false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p, true
	}
	return abs, true
}
