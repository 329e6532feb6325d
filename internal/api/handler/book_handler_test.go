package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bibliotekopol/library-system/internal/core/domain"
	"github.com/bibliotekopol/library-system/internal/core/ports"
)

type stubCatalogService struct {
	searchFn func(ctx context.Context, query string) ([]*domain.Book, error)
	createFn func(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error)
	borrowFn func(ctx context.Context, bookID string, requester ports.Identity) (*domain.Book, error)
	returnFn func(ctx context.Context, bookID string, requester ports.Identity) (*domain.Book, error)
}

func (s *stubCatalogService) Search(ctx context.Context, query string) ([]*domain.Book, error) {
	return s.searchFn(ctx, query)
}

func (s *stubCatalogService) Create(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	return s.createFn(ctx, input)
}

func (s *stubCatalogService) Update(ctx context.Context, id string, input ports.UpdateBookInput) (*domain.Book, error) {
	return nil, domain.ErrBookNotFound
}

func (s *stubCatalogService) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *stubCatalogService) Borrow(ctx context.Context, bookID string, requester ports.Identity) (*domain.Book, error) {
	return s.borrowFn(ctx, bookID, requester)
}

func (s *stubCatalogService) Return(ctx context.Context, bookID string, requester ports.Identity) (*domain.Book, error) {
	return s.returnFn(ctx, bookID, requester)
}

func (s *stubCatalogService) ListBorrowings(ctx context.Context, requester ports.Identity) ([]*domain.BorrowRecord, error) {
	return []*domain.BorrowRecord{}, nil
}

func TestBookHandler_List_PassesQuery(t *testing.T) {
	stub := &stubCatalogService{
		searchFn: func(ctx context.Context, query string) ([]*domain.Book, error) {
			if query != "potter" {
				t.Fatalf("expected query potter, got %q", query)
			}
			return []*domain.Book{{ID: "b2", Title: "Harry Potter i Kamień Filozoficzny"}}, nil
		},
	}
	handler := NewBookHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/books?q=potter", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var books []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &books); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(books) != 1 || books[0]["id"] != "b2" {
		t.Fatalf("unexpected payload: %+v", books)
	}
}

func TestBookHandler_Create_MissingAuthor(t *testing.T) {
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBookHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/books", `{"title":"Lalka"}`)
	err := handler.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestBookHandler_Borrow_Success(t *testing.T) {
	stub := &stubCatalogService{
		borrowFn: func(ctx context.Context, bookID string, requester ports.Identity) (*domain.Book, error) {
			if bookID != "b1" || requester.ID != "u-stu" {
				t.Fatalf("unexpected args: %s %+v", bookID, requester)
			}
			return &domain.Book{ID: bookID, Status: domain.StatusBorrowed, BorrowerID: requester.ID}, nil
		},
	}
	handler := NewBookHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/books/b1/borrow", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")
	c.Set("user_id", "u-stu")
	c.Set("role", domain.RoleStudent)

	if err := handler.Borrow(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
}

func TestBookHandler_Borrow_MissingClaims(t *testing.T) {
	stub := &stubCatalogService{
		borrowFn: func(ctx context.Context, bookID string, requester ports.Identity) (*domain.Book, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBookHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/books/b1/borrow", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	err := handler.Borrow(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestBookHandler_Return_PropagatesForbidden(t *testing.T) {
	stub := &stubCatalogService{
		returnFn: func(ctx context.Context, bookID string, requester ports.Identity) (*domain.Book, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewBookHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/books/b1/return", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")
	c.Set("user_id", "u-stu")
	c.Set("role", domain.RoleStudent)

	if err := handler.Return(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
