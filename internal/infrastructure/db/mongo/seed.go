package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

// Seed inserts the fixed demo rows when the users collection is empty:
// three accounts (one per role), three books, and one open borrowing held
// by the student. Re-running against a populated database is a no-op.
func Seed(ctx context.Context, db *mongo.Database) error {
	count, err := db.Collection(usersCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()

	type account struct {
		id       string
		username string
		password string
		name     string
		role     string
	}
	accounts := []account{
		{id: "u-admin", username: "admin", password: "admin123", name: "Admin", role: domain.RoleAdmin},
		{id: "u-lib", username: "librarian", password: "lib123", name: "Bibliotekarz", role: domain.RoleLibrarian},
		{id: "u-stu", username: "student", password: "student123", name: "Uczeń", role: domain.RoleStudent},
	}

	users := make([]interface{}, 0, len(accounts))
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}
		users = append(users, mongoUser{
			ID:           a.id,
			Username:     a.username,
			Name:         a.name,
			PasswordHash: string(hash),
			Role:         a.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	if _, err := db.Collection(usersCollection).InsertMany(ctx, users); err != nil {
		return fmt.Errorf("seed: insert users: %w", err)
	}

	year := func(y int) *int { return &y }
	books := []interface{}{
		&domain.Book{ID: "b1", Title: "Pan Tadeusz", Author: "Adam Mickiewicz", Category: "Literatura polska", Year: year(1834), Status: domain.StatusAvailable},
		&domain.Book{ID: "b2", Title: "Harry Potter i Kamień Filozoficzny", Author: "J.K. Rowling", Category: "Fantasy", Year: year(1997), Status: domain.StatusAvailable},
		&domain.Book{ID: "b3", Title: "W pustyni i w puszczy", Author: "Henryk Sienkiewicz", Category: "Przygoda", Year: year(1911), Status: domain.StatusBorrowed, BorrowerID: "u-stu"},
	}
	if _, err := db.Collection(booksCollection).InsertMany(ctx, books); err != nil {
		return fmt.Errorf("seed: insert books: %w", err)
	}

	record := &domain.BorrowRecord{
		ID:         uuid.NewString(),
		BookID:     "b3",
		UserID:     "u-stu",
		BorrowedAt: now,
	}
	if _, err := db.Collection(borrowingsCollection).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("seed: insert borrowing: %w", err)
	}

	return nil
}
