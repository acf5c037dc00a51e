// Package credential hashea y verifica las contraseñas de login y la contraseña de dueño.
// El hash es bcrypt (con sal, una vía); la comparación es de tiempo constante.
package credential

import (
	"fmt"

	"github.com/jhoicas/shop-admin/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Hasher aplica bcrypt con un costo configurable.
type Hasher struct {
	cost int
}

// NewHasher construye el hasher. Un costo fuera del rango de bcrypt usa bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash devuelve el hash de raw. Una contraseña vacía es ErrInvalidInput.
func (h *Hasher) Hash(raw string) (string, error) {
	if raw == "" {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compara raw contra hash. Un hash vacío nunca verifica.
func (h *Hasher) Verify(raw, hash string) bool {
	if hash == "" || raw == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// VerifyOptional es Verify para hashes anulables (owner_password_hash).
func (h *Hasher) VerifyOptional(raw string, hash *string) bool {
	if hash == nil {
		return false
	}
	return h.Verify(raw, *hash)
}
