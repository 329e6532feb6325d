package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bibliotekopol/library-system/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog and loan operations.
type BookHandler struct {
	catalog ports.CatalogService
}

func NewBookHandler(catalog ports.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// List handles GET /api/books?q= — catalog search, open to everyone.
//
// @Summary      Search the book catalog
// @Tags         books
// @Produce      json
// @Param        q  query     string  false  "Substring matched against title, author and category"
// @Success      200  {array}  domain.Book
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.catalog.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Create handles POST /api/books.
//
// @Summary      Add a book to the catalog
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book details"
// @Success      201   {object}  domain.Book
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.catalog.Create(c.Request().Context(), ports.CreateBookInput{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Year:     req.Year,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Update handles PUT /api/books/:id — partial field replacement.
//
// @Summary      Edit a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Book id"
// @Param        body  body      updateBookRequest  true  "Fields to change"
// @Success      200   {object}  domain.Book
// @Failure      404   {object}  map[string]string
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req updateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.catalog.Update(c.Request().Context(), c.Param("id"), ports.UpdateBookInput{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Year:     req.Year,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /api/books/:id — hard removal, admin only.
//
// @Summary      Remove a book from the catalog
// @Tags         books
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Borrow handles POST /api/books/:id/borrow.
//
// @Summary      Borrow an available book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      200  {object}  loanResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/books/{id}/borrow [post]
func (h *BookHandler) Borrow(c echo.Context) error {
	requester, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	book, err := h.catalog.Borrow(c.Request().Context(), c.Param("id"), requester)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loanResponse{Success: true, Book: book})
}

// Return handles POST /api/books/:id/return. Students may only return their
// own loans; librarians and admins may return any book.
//
// @Summary      Return a borrowed book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      200  {object}  loanResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/books/{id}/return [post]
func (h *BookHandler) Return(c echo.Context) error {
	requester, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	book, err := h.catalog.Return(c.Request().Context(), c.Param("id"), requester)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loanResponse{Success: true, Book: book})
}

// ListBorrowings handles GET /api/borrowings — the caller's loan history, or
// the full ledger for librarians and admins.
//
// @Summary      List borrow records
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.BorrowRecord
// @Router       /api/borrowings [get]
func (h *BookHandler) ListBorrowings(c echo.Context) error {
	requester, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	records, err := h.catalog.ListBorrowings(c.Request().Context(), requester)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
