package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia de usuarios, incluida la
// verificación de acceso a puntos de venta (relación user_sale_points).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndOrganization(ctx context.Context, email, organizationID string) (*entity.User, error)

	// HasSalePointAccess indica si el usuario puede operar el punto de venta.
	// Los admin tienen acceso implícito a todos los puntos de su organización.
	HasSalePointAccess(ctx context.Context, userID, salePointID string) (bool, error)

	// GrantSalePointAccess registra el acceso (usado por el seed y administración).
	GrantSalePointAccess(ctx context.Context, userID, salePointID string) error
}
