package ports

import (
	"context"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

// BookRepository defines persistence operations for the book catalog.
//
// SetBorrowed and SetReturned are conditional transitions: the status check
// and the write happen as a single atomic store operation so that two
// concurrent borrowers of the same book cannot both succeed.
type BookRepository interface {
	Insert(ctx context.Context, book *domain.Book) error
	FindByID(ctx context.Context, id string) (*domain.Book, error)

	// Search returns books whose title, author or category contains query
	// (case-insensitive), ordered by title ascending. An empty query returns
	// the whole catalog.
	Search(ctx context.Context, query string) ([]*domain.Book, error)

	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) error

	// SetBorrowed atomically moves the book from available to borrowed and
	// records borrowerID. Returns domain.ErrBookNotFound when the id is
	// unknown, domain.ErrAlreadyBorrowed when the book is already out.
	SetBorrowed(ctx context.Context, bookID, borrowerID string) (*domain.Book, error)

	// SetReturned atomically moves the book from borrowed to available and
	// clears the borrower. When onlyBorrowerID is non-empty the transition
	// additionally requires the current borrower to match; a mismatch yields
	// domain.ErrForbidden. Other failures: domain.ErrBookNotFound,
	// domain.ErrNotBorrowed.
	SetReturned(ctx context.Context, bookID, onlyBorrowerID string) (*domain.Book, error)
}
