package ports

import (
	"context"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

// CreateBookInput carries the fields for a new catalog entry.
type CreateBookInput struct {
	Title    string
	Author   string
	Category string
	Year     *int
}

// UpdateBookInput carries a partial edit: nil fields keep the stored value.
type UpdateBookInput struct {
	Title    *string
	Author   *string
	Category *string
	Year     *int
}

// CatalogService defines use-case operations over the book catalog and the
// loan ledger. It is the sole writer of Book.Status/BorrowerID and of
// BorrowRecord lifecycle.
type CatalogService interface {
	Search(ctx context.Context, query string) ([]*domain.Book, error)
	Create(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	Update(ctx context.Context, id string, input UpdateBookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error

	Borrow(ctx context.Context, bookID string, requester Identity) (*domain.Book, error)
	Return(ctx context.Context, bookID string, requester Identity) (*domain.Book, error)
	ListBorrowings(ctx context.Context, requester Identity) ([]*domain.BorrowRecord, error)
}
