// Package settings contiene la configuración de la tienda: por ahora, el logo usado en facturas.
package settings

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

// LogoStore guarda la imagen y devuelve la URL pública con la que se sirve.
type LogoStore interface {
	Save(ctx context.Context, name string, r io.Reader) (url string, err error)
}

// allowedImageTypes tipos detectados por contenido (no por la extensión declarada).
var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LogoUpload archivo recibido en el formulario multipart.
type LogoUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// LogoUseCase actualiza el logo de la tienda.
type LogoUseCase struct {
	userRepo repository.UserRepository
	store    LogoStore
	maxBytes int64
}

// NewLogoUseCase construye el caso de uso. maxBytes limita el tamaño de la imagen.
func NewLogoUseCase(userRepo repository.UserRepository, store LogoStore, maxBytes int64) *LogoUseCase {
	return &LogoUseCase{userRepo: userRepo, store: store, maxBytes: maxBytes}
}

// UpdateLogo valida la imagen, la guarda como "{userID}_{nombre}" y asocia su URL al owner.
// Solo el owner cambia el logo de su tienda (staff -> ErrForbidden).
func (uc *LogoUseCase) UpdateLogo(ctx context.Context, userID string, in LogoUpload) (*dto.UserResponse, error) {
	if in.Body == nil || in.Size <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if uc.maxBytes > 0 && in.Size > uc.maxBytes {
		return nil, fmt.Errorf("%w: la imagen supera %d bytes", domain.ErrInvalidInput, uc.maxBytes)
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !user.IsOwner() {
		return nil, domain.ErrForbidden
	}

	br := bufio.NewReaderSize(in.Body, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("leer imagen: %w", err)
	}
	ext, ok := allowedImageTypes[http.DetectContentType(head)]
	if !ok {
		return nil, fmt.Errorf("%w: formato de imagen no soportado", domain.ErrInvalidInput)
	}

	// La extensión se toma del tipo detectado, no del nombre enviado.
	safe := SecureFilename(in.Filename)
	stem := strings.TrimSuffix(safe, filepath.Ext(safe))
	if stem == "" {
		stem = "logo"
	}
	name := SecureFilename(user.ID + "_" + stem + ext)

	var body io.Reader = br
	if uc.maxBytes > 0 {
		body = io.LimitReader(br, uc.maxBytes)
	}
	url, err := uc.store.Save(ctx, name, body)
	if err != nil {
		return nil, fmt.Errorf("guardar logo: %w", err)
	}
	if err := uc.userRepo.UpdateLogo(ctx, user.ID, url); err != nil {
		return nil, err
	}
	user.LogoURL = &url
	return dto.ToUserResponse(user), nil
}
