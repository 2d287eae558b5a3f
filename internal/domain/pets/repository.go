package pets

import (
	"context"

	"pet-qr-tracker/internal/platform/geo"
)

// Repository persiste mascotas. Los adapters devuelven ErrNotFound / ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	UpdateProfile(ctx context.Context, id string, p Profile) error
	SetStatus(ctx context.Context, id string, s Status) error
	// SetHome con nil limpia el hogar.
	SetHome(ctx context.Context, id string, home *geo.Point) error
	// Delete borra la mascota junto con sus escaneos y contactos.
	Delete(ctx context.Context, id string) error
}
