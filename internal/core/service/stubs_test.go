package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories mirroring the Mongo implementations' semantics.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Search(_ context.Context, query string, excludeRole string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	matched := []*domain.User{}
	for _, u := range r.users {
		if excludeRole != "" && u.Role == excludeRole {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Username), q) &&
			!strings.Contains(strings.ToLower(u.Name), q) {
			continue
		}
		matched = append(matched, cloneUser(u))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubBookRepo struct {
	mu    sync.Mutex
	books map[string]*domain.Book
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[string]*domain.Book)}
}

func cloneBook(b *domain.Book) *domain.Book {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func (r *stubBookRepo) Insert(_ context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[book.ID] = cloneBook(book)
	return nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	return cloneBook(b), nil
}

func (r *stubBookRepo) Search(_ context.Context, query string) ([]*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	matched := []*domain.Book{}
	for _, b := range r.books {
		if q != "" &&
			!strings.Contains(strings.ToLower(b.Title), q) &&
			!strings.Contains(strings.ToLower(b.Author), q) &&
			!strings.Contains(strings.ToLower(b.Category), q) {
			continue
		}
		matched = append(matched, cloneBook(b))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	return matched, nil
}

func (r *stubBookRepo) Update(_ context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.books[book.ID]
	if !ok {
		return domain.ErrBookNotFound
	}
	// Editable fields only; status and borrower stay untouched.
	current.Title = book.Title
	current.Author = book.Author
	current.Category = book.Category
	current.Year = book.Year
	return nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

// SetBorrowed mirrors the Mongo conditional update: the status check and the
// write happen under one lock, so only one concurrent borrower wins.
func (r *stubBookRepo) SetBorrowed(_ context.Context, bookID, borrowerID string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[bookID]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	if b.Status != domain.StatusAvailable {
		return nil, domain.ErrAlreadyBorrowed
	}
	b.Status = domain.StatusBorrowed
	b.BorrowerID = borrowerID
	return cloneBook(b), nil
}

func (r *stubBookRepo) SetReturned(_ context.Context, bookID, onlyBorrowerID string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[bookID]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	if b.Status != domain.StatusBorrowed {
		return nil, domain.ErrNotBorrowed
	}
	if onlyBorrowerID != "" && b.BorrowerID != onlyBorrowerID {
		return nil, domain.ErrForbidden
	}
	b.Status = domain.StatusAvailable
	b.BorrowerID = ""
	return cloneBook(b), nil
}

type stubLedger struct {
	mu      sync.Mutex
	records []*domain.BorrowRecord
}

func newStubLedger() *stubLedger {
	return &stubLedger{}
}

func (l *stubLedger) Append(_ context.Context, record *domain.BorrowRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	clone := *record
	l.records = append(l.records, &clone)
	return nil
}

func (l *stubLedger) CloseOpen(_ context.Context, bookID string, returnedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, rec := range l.records {
		if rec.BookID == bookID && rec.ReturnedAt == nil {
			ts := returnedAt
			rec.ReturnedAt = &ts
		}
	}
	return nil
}

func (l *stubLedger) ListByUser(_ context.Context, userID string) ([]*domain.BorrowRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []*domain.BorrowRecord{}
	for _, rec := range l.records {
		if rec.UserID == userID {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (l *stubLedger) ListAll(_ context.Context) ([]*domain.BorrowRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*domain.BorrowRecord, 0, len(l.records))
	for _, rec := range l.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

// openRecords counts ledger entries for bookID with no ReturnedAt.
func (l *stubLedger) openRecords(bookID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, rec := range l.records {
		if rec.BookID == bookID && rec.ReturnedAt == nil {
			n++
		}
	}
	return n
}

type stubSink struct {
	mu     sync.Mutex
	events []domain.LoanEvent
}

func (s *stubSink) Enqueue(event domain.LoanEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}
