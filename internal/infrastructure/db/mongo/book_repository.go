package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

const booksCollection = "books"

type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

func (r *BookRepository) Insert(ctx context.Context, book *domain.Book) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, book); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var book domain.Book
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return &book, nil
}

func (r *BookRepository) Search(ctx context.Context, query string) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"author": pattern},
			bson.M{"category": pattern},
		}
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer cursor.Close(ctx)

	books := []*domain.Book{}
	for cursor.Next(ctx) {
		var book domain.Book
		if err := cursor.Decode(&book); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, &book)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

// Update rewrites the editable fields only. Status and borrower are owned by
// the SetBorrowed/SetReturned transitions and are never touched here.
func (r *BookRepository) Update(ctx context.Context, book *domain.Book) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"title":    book.Title,
		"author":   book.Author,
		"category": book.Category,
	}
	update := bson.M{"$set": set}
	if book.Year != nil {
		set["year"] = *book.Year
	} else {
		update["$unset"] = bson.M{"year": ""}
	}

	res, err := r.coll.UpdateByID(ctx, book.ID, update)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// SetBorrowed performs the available→borrowed transition as a single
// conditional update: the status check and the write cannot be split across
// concurrent requests, so at most one borrower wins.
func (r *BookRepository) SetBorrowed(ctx context.Context, bookID, borrowerID string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": bookID, "status": domain.StatusAvailable}
	update := bson.M{"$set": bson.M{
		"status":      domain.StatusBorrowed,
		"borrower_id": borrowerID,
	}}

	var book domain.Book
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err == nil {
		return &book, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("borrow book: %w", err)
	}

	// The conditional update missed: either the book is gone or it is
	// already out. Refetch to report the right failure.
	if _, err := r.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	return nil, domain.ErrAlreadyBorrowed
}

// SetReturned performs the borrowed→available transition. When
// onlyBorrowerID is non-empty the current borrower must match (student
// returns); the ownership check is part of the same conditional update.
func (r *BookRepository) SetReturned(ctx context.Context, bookID, onlyBorrowerID string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": bookID, "status": domain.StatusBorrowed}
	if onlyBorrowerID != "" {
		filter["borrower_id"] = onlyBorrowerID
	}
	update := bson.M{
		"$set":   bson.M{"status": domain.StatusAvailable},
		"$unset": bson.M{"borrower_id": ""},
	}

	var book domain.Book
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err == nil {
		return &book, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("return book: %w", err)
	}

	current, err := r.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.StatusBorrowed {
		return nil, domain.ErrNotBorrowed
	}
	// Borrowed, but by someone else.
	return nil, domain.ErrForbidden
}

// EnsureIndexes creates the catalog query indexes.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
