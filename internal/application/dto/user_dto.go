package dto

import "time"

// RegisterRequest entrada para registro: crea una cuenta dueña (owner) con su tienda.
type RegisterRequest struct {
	Username      string `json:"username" validate:"required,min=2,max=20"`
	Password      string `json:"password" validate:"required"`
	ShopName      string `json:"shop_name" validate:"required,min=2,max=120"`
	OwnerPassword string `json:"owner_password" validate:"required"`
}

// CreateStaffRequest entrada para que un owner cree una cuenta de empleado.
type CreateStaffRequest struct {
	Username string `json:"username" validate:"required,min=2,max=20"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin hashes).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ShopID    string    `json:"shop_id"`
	ShopName  string    `json:"shop_name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
