package contacts

import "context"

type Repository interface {
	Add(ctx context.Context, c Contact) (int64, error)
	ListByPet(ctx context.Context, petID string) ([]Contact, error)
}
