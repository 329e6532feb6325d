package ports

import (
	"context"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

// Identity is the authenticated caller extracted from a session token.
type Identity struct {
	ID   string
	Role string
	Name string
}

// RegisterInput carries all data for creating an account via the open
// registration endpoint.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Role     string
	// CallerRole is the role of the authenticated caller, or empty for an
	// anonymous registration. Only admins may create privileged accounts.
	CallerRole string
}

// AuthService implements login and registration, issuing session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
}
