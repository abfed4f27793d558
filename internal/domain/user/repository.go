package user

import "context"

// Repository exposes user persistence. List returns users in registration
// order; the pairing captain tie-break depends on it.
type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, item User) error
	Update(ctx context.Context, item User) error
}
