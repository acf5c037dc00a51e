package auth

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/domain/repository"
	"github.com/jhoicas/shop-admin/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// PasswordHasher hashea y verifica contraseñas. Lo implementa *credential.Hasher.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Verify(raw, hash string) bool
}

// AuthUseCase casos de uso de cuentas: registro de dueños, login y alta de empleados.
type AuthUseCase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, hasher PasswordHasher, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, hasher: hasher, jwtCfg: jwtCfg}
}

func validUsername(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 2 && n <= 20
}

// RegisterUser crea una cuenta owner con su tienda. Hashea password y owner password con bcrypt.
// Devuelve ErrDuplicate si el username ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	shopName := strings.TrimSpace(in.ShopName)
	n := utf8.RuneCountInString(shopName)
	if !validUsername(username) || n < 2 || n > 120 || in.Password == "" || in.OwnerPassword == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	ownerHash, err := uc.hasher.Hash(in.OwnerPassword)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:                uuid.New().String(),
		Username:          username,
		PasswordHash:      hash,
		OwnerPasswordHash: &ownerHash,
		Role:              entity.RoleOwner,
		ShopName:          shopName,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// CreateStaff crea una cuenta staff que opera sobre la tienda del owner.
// Staff no tiene owner password y no accede a reportes.
func (uc *AuthUseCase) CreateStaff(ctx context.Context, ownerID string, in dto.CreateStaffRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if !validUsername(username) || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	owner, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUnauthorized
	}
	if !owner.IsOwner() {
		return nil, domain.ErrForbidden
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	ownerRef := owner.ID
	staff := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         entity.RoleStaff,
		ShopName:     owner.ShopName,
		OwnerID:      &ownerRef,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(staff), nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// Usuario inexistente y password incorrecto producen el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID: user.ID,
		ShopID: user.ShopID(),
		Role:   user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.ToUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToUserResponse(user), nil
}
