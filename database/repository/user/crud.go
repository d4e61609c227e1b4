// File: database/repository/user/crud.go
package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"oraculo/models"
)

// UpsertByGoogleID stores the calendar owner after an OAuth callback. A
// fresh refresh token replaces the stored one; when Google returns no token
// on a repeat sign-in the stored credential is kept.
func (r *mongoUserRepo) UpsertByGoogleID(ctx context.Context, user models.CalendarUser) (*models.CalendarUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	set := bson.M{
		"email":     user.Email,
		"name":      user.Name,
		"updatedAt": now,
	}
	if user.RefreshToken != "" {
		set["refreshToken"] = user.RefreshToken
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"googleId":  user.GoogleID,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var stored models.CalendarUser
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"googleId": user.GoogleID}, update, opts).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to upsert calendar user: %w", err)
	}
	return &stored, nil
}

func (r *mongoUserRepo) GetByID(ctx context.Context, id string) (*models.CalendarUser, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.CalendarUser, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.CalendarUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.CalendarUser
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar user: %w", err)
	}
	return &user, nil
}
