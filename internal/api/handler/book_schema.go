package handler

import "github.com/bibliotekopol/library-system/internal/core/domain"

type createBookRequest struct {
	Title    string `json:"title"    validate:"required"`
	Author   string `json:"author"   validate:"required"`
	Category string `json:"category"`
	Year     *int   `json:"year"     validate:"omitempty,gte=0,lte=2100"`
}

// updateBookRequest carries a partial edit; absent fields keep stored values.
type updateBookRequest struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
	Year     *int    `json:"year" validate:"omitempty,gte=0,lte=2100"`
}

// loanResponse is the envelope for borrow/return results.
type loanResponse struct {
	Success bool         `json:"success"`
	Book    *domain.Book `json:"book"`
}
