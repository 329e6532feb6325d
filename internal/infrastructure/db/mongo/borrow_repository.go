package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

const borrowingsCollection = "borrowings"

// BorrowRepository stores the append-only loan ledger.
type BorrowRepository struct {
	coll *mongo.Collection
}

func NewBorrowRepository(db *mongo.Database) *BorrowRepository {
	return &BorrowRepository{coll: db.Collection(borrowingsCollection)}
}

func (r *BorrowRepository) Append(ctx context.Context, record *domain.BorrowRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("append borrow record: %w", err)
	}
	return nil
}

// CloseOpen stamps ReturnedAt on the open record for bookID. The book
// transition guarantees at most one open record exists per book.
func (r *BorrowRepository) CloseOpen(ctx context.Context, bookID string, returnedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"book_id": bookID, "returned_at": nil}
	update := bson.M{"$set": bson.M{"returned_at": returnedAt}}

	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("close borrow record: %w", err)
	}
	return nil
}

func (r *BorrowRepository) ListByUser(ctx context.Context, userID string) ([]*domain.BorrowRecord, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *BorrowRepository) ListAll(ctx context.Context) ([]*domain.BorrowRecord, error) {
	return r.list(ctx, bson.M{})
}

func (r *BorrowRepository) list(ctx context.Context, filter bson.M) ([]*domain.BorrowRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "borrowed_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list borrow records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []*domain.BorrowRecord{}
	for cursor.Next(ctx) {
		var record domain.BorrowRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("decode borrow record: %w", err)
		}
		records = append(records, &record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list borrow records: %w", err)
	}
	return records, nil
}

// EnsureIndexes creates the ledger query indexes.
func (r *BorrowRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "book_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "borrowed_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
