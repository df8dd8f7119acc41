package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UsersRepo interface {
	UpsertUser(ctx context.Context, user *User) (*User, error)
	UpdateUserProfile(ctx context.Context, authID string, fields bson.M) error
	GetUserByAuthID(ctx context.Context, authID string) (*User, error)
}

// UpsertUser mirrors an identity-provider profile into the users
// collection, keyed by the provider subject id.
func (mdb *MongodbRepo) UpsertUser(ctx context.Context, user *User) (*User, error) {
	col := mdb.collection(UsersColName)

	now := time.Now()
	filter := bson.M{"auth_id": user.AuthID}
	update := bson.M{
		"$set": bson.M{
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"image_url":  user.ImageURL,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"auth_id":    user.AuthID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result User
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error upserting user: %v", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) UpdateUserProfile(ctx context.Context, authID string, fields bson.M) error {
	col := mdb.collection(UsersColName)

	fields["updated_at"] = time.Now()
	_, err := col.UpdateOne(ctx, bson.M{"auth_id": authID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating user: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetUserByAuthID(ctx context.Context, authID string) (*User, error) {
	col := mdb.collection(UsersColName)

	var user User
	err := col.FindOne(ctx, bson.M{"auth_id": authID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding user: %v", err)
	}
	return &user, nil
}
