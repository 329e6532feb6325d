package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bibliotekopol/library-system/internal/core/domain"
	"github.com/bibliotekopol/library-system/internal/core/ports"
)

// CatalogCache abstracts the catalog list cache (Redis). A miss or a cache
// failure falls through to the repository.
type CatalogCache interface {
	GetCatalog(ctx context.Context) ([]*domain.Book, bool, error)
	SetCatalog(ctx context.Context, books []*domain.Book) error
	Invalidate(ctx context.Context) error
}

// LoanEventSink accepts loan events for asynchronous processing.
type LoanEventSink interface {
	Enqueue(event domain.LoanEvent)
}

// CatalogService orchestrates catalog CRUD, search, and the borrow/return
// transition against the book store and the loan ledger.
type CatalogService struct {
	books  ports.BookRepository
	ledger ports.BorrowRepository
	cache  CatalogCache
	events LoanEventSink
	logger zerolog.Logger
}

func NewCatalogService(
	books ports.BookRepository,
	ledger ports.BorrowRepository,
	cache CatalogCache,
	events LoanEventSink,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{books: books, ledger: ledger, cache: cache, events: events, logger: logger}
}

// Search returns books matching query. The full catalog (empty query) is
// served from the cache when possible; filtered searches always hit the store.
func (s *CatalogService) Search(ctx context.Context, query string) ([]*domain.Book, error) {
	if query == "" && s.cache != nil {
		books, hit, err := s.cache.GetCatalog(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache read failed, falling back to store")
		} else if hit {
			return books, nil
		}
	}

	books, err := s.books.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if query == "" && s.cache != nil {
		if err := s.cache.SetCatalog(ctx, books); err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return books, nil
}

func (s *CatalogService) Create(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	book := &domain.Book{
		ID:       uuid.NewString(),
		Title:    input.Title,
		Author:   input.Author,
		Category: input.Category,
		Year:     input.Year,
		Status:   domain.StatusAvailable,
	}

	if err := s.books.Insert(ctx, book); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)

	s.logger.Info().Str("book_id", book.ID).Str("title", book.Title).Msg("book created")
	return book, nil
}

// Update applies a partial edit; absent fields keep their stored values.
// Status and borrower are never touched here: the borrow/return transitions
// own those fields.
func (s *CatalogService) Update(ctx context.Context, id string, input ports.UpdateBookInput) (*domain.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Category != nil {
		book.Category = *input.Category
	}
	if input.Year != nil {
		book.Year = input.Year
	}

	if err := s.books.Update(ctx, book); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)

	return book, nil
}

// Delete removes the book. Ledger records referencing it are kept as history.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// Borrow moves the book from available to borrowed and appends an open
// ledger record. The status transition is a single conditional store update,
// so concurrent borrow attempts on the same book yield at most one winner.
func (s *CatalogService) Borrow(ctx context.Context, bookID string, requester ports.Identity) (*domain.Book, error) {
	book, err := s.books.SetBorrowed(ctx, bookID, requester.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.BorrowRecord{
		ID:         uuid.NewString(),
		BookID:     book.ID,
		UserID:     requester.ID,
		BorrowedAt: now,
	}
	if err := s.ledger.Append(ctx, record); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.emit(domain.LoanEvent{BookID: book.ID, UserID: requester.ID, Action: domain.LoanBorrowed, Timestamp: now})

	s.logger.Info().
		Str("book_id", book.ID).
		Str("user_id", requester.ID).
		Msg("book borrowed")
	return book, nil
}

// Return moves the book back to available and closes the open ledger record.
// Students may only return their own loans; librarians and admins may return
// any book. Ownership is part of the conditional update for students.
func (s *CatalogService) Return(ctx context.Context, bookID string, requester ports.Identity) (*domain.Book, error) {
	onlyBorrower := ""
	if requester.Role == domain.RoleStudent {
		onlyBorrower = requester.ID
	}

	book, err := s.books.SetReturned(ctx, bookID, onlyBorrower)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.ledger.CloseOpen(ctx, book.ID, now); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.emit(domain.LoanEvent{BookID: book.ID, UserID: requester.ID, Action: domain.LoanReturned, Timestamp: now})

	s.logger.Info().
		Str("book_id", book.ID).
		Str("user_id", requester.ID).
		Msg("book returned")
	return book, nil
}

// ListBorrowings returns the requester's own records, or every record for
// librarian and admin callers, most recent borrow first.
func (s *CatalogService) ListBorrowings(ctx context.Context, requester ports.Identity) ([]*domain.BorrowRecord, error) {
	if requester.Role == domain.RoleLibrarian || requester.Role == domain.RoleAdmin {
		return s.ledger.ListAll(ctx)
	}
	return s.ledger.ListByUser(ctx, requester.ID)
}

func (s *CatalogService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

func (s *CatalogService) emit(event domain.LoanEvent) {
	if s.events != nil {
		s.events.Enqueue(event)
	}
}
