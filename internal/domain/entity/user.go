package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User es un usuario del back office. El acceso a puntos de venta se resuelve
// por la relación user_sale_points (ver UserRepository.HasSalePointAccess).
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string
	Name           string
	Role           string // "admin" | "vendedor"
	Status         string // "active" | "disabled"
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
