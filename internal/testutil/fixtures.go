package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/shop-admin/internal/domain/credential"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
)

// OwnerPassword contraseña de dueño de los owners sembrados.
const OwnerPassword = "clave-dueño"

// Hasher hasher con costo mínimo para que los tests no paguen bcrypt completo.
func Hasher() *credential.Hasher {
	return credential.NewHasher(bcrypt.MinCost)
}

// SeedOwner crea un owner con password "secret" y owner password OwnerPassword.
func SeedOwner(t *testing.T, s *Store, username string) *entity.User {
	t.Helper()
	h := Hasher()
	pass, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	ownerPass, err := h.Hash(OwnerPassword)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:                uuid.New().String(),
		Username:          username,
		PasswordHash:      pass,
		OwnerPasswordHash: &ownerPass,
		Role:              entity.RoleOwner,
		ShopName:          "Tienda " + username,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return u
}

// SeedStaff crea un empleado de la tienda del owner, con password "secret".
func SeedStaff(t *testing.T, s *Store, owner *entity.User, username string) *entity.User {
	t.Helper()
	pass, err := Hasher().Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	ownerID := owner.ID
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: pass,
		Role:         entity.RoleStaff,
		ShopName:     owner.ShopName,
		OwnerID:      &ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return u
}

// SeedItem crea un item en la tienda sin pasar por el caso de uso (sin movimiento en el libro).
func SeedItem(t *testing.T, s *Store, shopID, name string, qty int, price string) *entity.Item {
	t.Helper()
	now := time.Now().UTC()
	it := &entity.Item{
		ID:        uuid.New().String(),
		UserID:    shopID,
		Name:      name,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Items().Create(context.Background(), it); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return it
}
