// File: database/repository/user/interface.go
package userRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"oraculo/database"
	"oraculo/models"
)

// ErrNotFound is returned when no calendar user matches the lookup.
var ErrNotFound = errors.New("calendar user not found")

type UserRepository interface {
	UpsertByGoogleID(ctx context.Context, user models.CalendarUser) (*models.CalendarUser, error)
	GetByID(ctx context.Context, id string) (*models.CalendarUser, error)
	GetByEmail(ctx context.Context, email string) (*models.CalendarUser, error)
	EnsureIndexes() error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	return &mongoUserRepo{
		coll: database.DB().Collection("calendar_users"),
	}
}
