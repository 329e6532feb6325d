package ports

import (
	"context"
	"time"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

// BorrowRepository manages the append-only loan ledger. Records are created
// on borrow, closed (ReturnedAt set) on return, and never deleted.
type BorrowRepository interface {
	Append(ctx context.Context, record *domain.BorrowRecord) error

	// CloseOpen sets ReturnedAt on the open record for bookID. At most one
	// open record exists per book at any time.
	CloseOpen(ctx context.Context, bookID string, returnedAt time.Time) error

	// ListByUser returns the user's records, most recent borrow first.
	ListByUser(ctx context.Context, userID string) ([]*domain.BorrowRecord, error)

	// ListAll returns every record, most recent borrow first.
	ListAll(ctx context.Context) ([]*domain.BorrowRecord, error)
}

// ActivityRepository persists loan activity events for the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.LoanEvent) error
}
