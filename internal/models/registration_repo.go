package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RegistrationsRepo interface {
	InsertRegistration(ctx context.Context, reg *Registration) (*Registration, error)
	FindByUserAndEvent(ctx context.Context, userID string, eventID primitive.ObjectID) (*Registration, error)
	FindByUniqueCode(ctx context.Context, code string) (*Registration, error)
	MarkParticipated(ctx context.Context, id primitive.ObjectID, at time.Time) (*Registration, error)
	ListByUser(ctx context.Context, userID string) ([]*Registration, error)
	ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]*Registration, error)
	ListByEventIDs(ctx context.Context, eventIDs []primitive.ObjectID) ([]*Registration, error)
	ListAll(ctx context.Context) ([]*Registration, error)
}

// InsertRegistration writes the document in a single insert. The unique
// indexes are the correctness guarantee: a duplicate (user,event) pair maps
// to ErrAlreadyRegistered, a unique-code collision to ErrDuplicateCode so
// the caller can retry with a fresh code.
func (mdb *MongodbRepo) InsertRegistration(ctx context.Context, reg *Registration) (*Registration, error) {
	col := mdb.collection(RegistrationsColName)

	res, err := col.InsertOne(ctx, reg)
	if err != nil {
		if dup := classifyDuplicateKey(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("error inserting registration: %v", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		reg.ID = oid
	}
	return reg, nil
}

func classifyDuplicateKey(err error) error {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return nil
	}
	for _, e := range we.WriteErrors {
		if e.Code != 11000 {
			continue
		}
		if strings.Contains(e.Message, UniqueCodeIndexName) {
			return ErrDuplicateCode
		}
		return ErrAlreadyRegistered
	}
	return nil
}

func (mdb *MongodbRepo) FindByUserAndEvent(ctx context.Context, userID string, eventID primitive.ObjectID) (*Registration, error) {
	col := mdb.collection(RegistrationsColName)

	var reg Registration
	err := col.FindOne(ctx, bson.M{"user_id": userID, "event_id": eventID}).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding registration: %v", err)
	}
	return &reg, nil
}

func (mdb *MongodbRepo) FindByUniqueCode(ctx context.Context, code string) (*Registration, error) {
	col := mdb.collection(RegistrationsColName)

	var reg Registration
	err := col.FindOne(ctx, bson.M{"unique_code": code}).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding registration by code: %v", err)
	}
	return &reg, nil
}

// MarkParticipated flips the attendance flag exactly once; a second call
// finds no matching document and reports ErrAlreadyParticipated.
func (mdb *MongodbRepo) MarkParticipated(ctx context.Context, id primitive.ObjectID, at time.Time) (*Registration, error) {
	col := mdb.collection(RegistrationsColName)

	filter := bson.M{"_id": id, "is_participated": false}
	update := bson.M{"$set": bson.M{
		"is_participated": true,
		"participated_at": at,
		"updated_at":      at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var reg Registration
	err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAlreadyParticipated
	}
	if err != nil {
		return nil, fmt.Errorf("error marking participation: %v", err)
	}
	return &reg, nil
}

func (mdb *MongodbRepo) ListByUser(ctx context.Context, userID string) ([]*Registration, error) {
	return mdb.findRegistrations(ctx, bson.M{"user_id": userID})
}

func (mdb *MongodbRepo) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]*Registration, error) {
	return mdb.findRegistrations(ctx, bson.M{"event_id": eventID})
}

func (mdb *MongodbRepo) ListByEventIDs(ctx context.Context, eventIDs []primitive.ObjectID) ([]*Registration, error) {
	if len(eventIDs) == 0 {
		return []*Registration{}, nil
	}
	return mdb.findRegistrations(ctx, bson.M{"event_id": bson.M{"$in": eventIDs}})
}

func (mdb *MongodbRepo) ListAll(ctx context.Context) ([]*Registration, error) {
	return mdb.findRegistrations(ctx, bson.M{})
}

func (mdb *MongodbRepo) findRegistrations(ctx context.Context, filter bson.M) ([]*Registration, error) {
	col := mdb.collection(RegistrationsColName)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding registrations: %v", err)
	}
	defer cursor.Close(ctx)

	regs := []*Registration{}
	for cursor.Next(ctx) {
		var r Registration
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding registration: %v", err)
		}
		regs = append(regs, &r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return regs, nil
}
