package domain

import "errors"

// BookStatus represents the lifecycle state of a catalog entry.
type BookStatus string

const (
	StatusAvailable BookStatus = "available"
	StatusBorrowed  BookStatus = "borrowed"
)

var ErrBookNotFound = errors.New("book not found")
var ErrAlreadyBorrowed = errors.New("book already borrowed")
var ErrNotBorrowed = errors.New("book not borrowed")
var ErrForbidden = errors.New("access forbidden")

// Book is the core catalog aggregate. A book is borrowed exactly when
// BorrowerID is non-empty.
type Book struct {
	ID         string     `json:"id" bson:"_id"`
	Title      string     `json:"title" bson:"title"`
	Author     string     `json:"author" bson:"author"`
	Category   string     `json:"category" bson:"category"`
	Year       *int       `json:"year" bson:"year,omitempty"`
	Status     BookStatus `json:"status" bson:"status"`
	BorrowerID string     `json:"borrowerId,omitempty" bson:"borrower_id,omitempty"`
}
