package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

const loanEventsCollection = "loan_events"

// ActivityRepository persists loan events to the activity audit collection.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(loanEventsCollection)}
}

func (r *ActivityRepository) Insert(ctx context.Context, event *domain.LoanEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert loan event: %w", err)
	}
	return nil
}
