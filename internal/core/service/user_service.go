package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bibliotekopol/library-system/internal/core/domain"
	"github.com/bibliotekopol/library-system/internal/core/ports"
)

// UserService orchestrates user administration, enforcing role visibility:
// librarian callers operate on a view that excludes admin accounts.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Search(ctx context.Context, query string, requesterRole string) ([]*domain.User, error) {
	excludeRole := ""
	if requesterRole == domain.RoleLibrarian {
		excludeRole = domain.RoleAdmin
	}
	return s.repo.Search(ctx, query, excludeRole)
}

func (s *UserService) Get(ctx context.Context, id string, requesterRole string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Admin rows are invisible to librarians, consistent with Search.
	if requesterRole == domain.RoleLibrarian && user.Role == domain.RoleAdmin {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput, requesterRole string) (*domain.User, error) {
	user, err := s.Get(ctx, id, requesterRole)
	if err != nil {
		return nil, err
	}

	if input.Role != nil && *input.Role != user.Role {
		if !domain.ValidRole(*input.Role) {
			return nil, domain.ErrInvalidRole
		}
		// Only admins may grant or revoke the admin role.
		if *input.Role == domain.RoleAdmin && requesterRole != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
		user.Role = *input.Role
	}
	if input.Username != nil && *input.Username != "" {
		user.Username = *input.Username
	}
	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user updated")
	return user, nil
}

// Delete hard-removes the user. Historical borrow records keep their userId
// reference; the ledger is an audit trail and is never rewritten.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
