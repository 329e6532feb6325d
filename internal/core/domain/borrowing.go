package domain

import "time"

// BorrowRecord is a single entry in the append-only loan ledger. Records are
// never deleted; a return closes the record by setting ReturnedAt.
type BorrowRecord struct {
	ID         string     `json:"id" bson:"_id"`
	BookID     string     `json:"bookId" bson:"book_id"`
	UserID     string     `json:"userId" bson:"user_id"`
	BorrowedAt time.Time  `json:"borrowedAt" bson:"borrowed_at"`
	ReturnedAt *time.Time `json:"returnedAt" bson:"returned_at,omitempty"`
}

// Open reports whether the loan is still outstanding.
func (r BorrowRecord) Open() bool {
	return r.ReturnedAt == nil
}

// LoanAction identifies the kind of loan transition an event records.
type LoanAction string

const (
	LoanBorrowed LoanAction = "borrowed"
	LoanReturned LoanAction = "returned"
)

// LoanEvent is an activity record emitted after a successful borrow or
// return, processed asynchronously into the activity audit trail.
type LoanEvent struct {
	BookID    string     `json:"book_id" bson:"book_id"`
	UserID    string     `json:"user_id" bson:"user_id"`
	Action    LoanAction `json:"action" bson:"action"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp"`
}
