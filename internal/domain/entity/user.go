package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// User representa una cuenta del sistema. Los dueños (owner) definen una tienda;
// los empleados (staff) trabajan sobre la tienda de su dueño (OwnerID).
type User struct {
	ID                string
	Username          string
	PasswordHash      string  // bcrypt hash, nunca plano en dominio después de persistir
	OwnerPasswordHash *string // solo cuentas owner; protege el reporte de ventas
	Role              string  // owner, staff
	ShopName          string
	LogoURL           *string
	OwnerID           *string // nil para owner
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ShopID devuelve el identificador de la tienda a la que pertenecen items, ventas y movimientos.
func (u *User) ShopID() string {
	if u.OwnerID != nil && *u.OwnerID != "" {
		return *u.OwnerID
	}
	return u.ID
}

// IsOwner indica si la cuenta tiene acceso a reportes.
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}
