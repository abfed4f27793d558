package invite

import "context"

type Repository interface {
	GetByCode(ctx context.Context, code string) (Invite, bool, error)
	ListPendingByEmail(ctx context.Context, email string) ([]Invite, error)
	Create(ctx context.Context, item Invite) error
	Update(ctx context.Context, item Invite) error
}
