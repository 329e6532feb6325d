package ports

import (
	"context"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts. The users
// collection backs both authentication and user administration.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUsernameTaken when the
	// username is already held by a live user (unique index at the store).
	Create(ctx context.Context, user *domain.User) error

	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Search returns users whose username or name contains query
	// (case-insensitive), ordered by name ascending. An empty query matches
	// everyone. When excludeRole is non-empty, users with that role are
	// omitted from the result.
	Search(ctx context.Context, query string, excludeRole string) ([]*domain.User, error)

	// Update replaces all mutable fields of the stored user. Returns
	// domain.ErrUsernameTaken when the new username collides with another
	// live user, domain.ErrUserNotFound when the id is unknown.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes the user row. Historical borrow records referencing the
	// user are left untouched.
	Delete(ctx context.Context, id string) error
}
