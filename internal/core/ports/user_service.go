package ports

import (
	"context"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

// UpdateUserInput carries a partial user edit: nil fields keep the stored
// value. A non-nil Password is rehashed before storage.
type UpdateUserInput struct {
	Username *string
	Name     *string
	Role     *string
	Password *string
}

// UserService defines user administration use-cases. Role visibility rules:
// librarian callers never see or touch admin accounts.
type UserService interface {
	Search(ctx context.Context, query string, requesterRole string) ([]*domain.User, error)
	Get(ctx context.Context, id string, requesterRole string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput, requesterRole string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// ActivityService processes loan events into the activity audit trail.
type ActivityService interface {
	Process(ctx context.Context, event domain.LoanEvent) error
}
