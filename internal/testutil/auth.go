package testutil

import (
	"testing"

	"github.com/jhoicas/shop-admin/internal/domain/entity"
	pkgjwt "github.com/jhoicas/shop-admin/pkg/jwt"
)

// TestSecret secreto JWT usado en tests de HTTP.
const TestSecret = "test-secret-key-for-unit-tests"

// BearerToken firma un JWT para el usuario con TestSecret y devuelve el header Authorization.
func BearerToken(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(TestSecret, pkgjwt.Identity{
		UserID: u.ID,
		ShopID: u.ShopID(),
		Role:   u.Role,
	}, "shop-admin-test", 60)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + tok
}
