package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventsRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	UpdateEvent(ctx context.Context, id primitive.ObjectID, set bson.M) (*Event, error)
	SetCommonEventActive(ctx context.Context, id primitive.ObjectID, isActive bool) (*Event, error)
	DeleteEventCascade(ctx context.Context, id primitive.ObjectID) (int64, error)
	ListDepartmentEvents(ctx context.Context, department string) ([]*Event, error)
	ListCommonEvents(ctx context.Context) ([]*Event, error)
	ListActiveCommonEvents(ctx context.Context) ([]*Event, error)
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col := mdb.collection(EventsColName)

	res, err := col.InsertOne(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("error inserting event: %v", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}
	return event, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col := mdb.collection(EventsColName)

	var event Event
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding event: %v", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) UpdateEvent(ctx context.Context, id primitive.ObjectID, set bson.M) (*Event, error) {
	col := mdb.collection(EventsColName)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Event
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating event: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) SetCommonEventActive(ctx context.Context, id primitive.ObjectID, isActive bool) (*Event, error) {
	col := mdb.collection(EventsColName)

	filter := bson.M{"_id": id, "event_category": EventCategoryCommon}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Event
	err := col.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"is_active": isActive}}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error toggling event: %v", err)
	}
	return &updated, nil
}

// DeleteEventCascade removes the event and every registration referencing
// it inside one transaction, so a crash cannot leave orphaned
// registrations behind. Returns the number of registrations removed.
func (mdb *MongodbRepo) DeleteEventCascade(ctx context.Context, id primitive.ObjectID) (int64, error) {
	session, err := mdb.mongodbClient.StartSession()
	if err != nil {
		return 0, fmt.Errorf("error starting session: %v", err)
	}
	defer session.EndSession(ctx)

	var removed int64
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res := mdb.collection(EventsColName).FindOneAndDelete(sc, bson.M{"_id": id})
		if err := res.Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrEventNotFound
			}
			return nil, err
		}

		dr, err := mdb.collection(RegistrationsColName).DeleteMany(sc, bson.M{"event_id": id})
		if err != nil {
			return nil, err
		}
		removed = dr.DeletedCount
		return nil, nil
	})
	if errors.Is(err, ErrEventNotFound) {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("error deleting event: %v", err)
	}
	return removed, nil
}

func (mdb *MongodbRepo) ListDepartmentEvents(ctx context.Context, department string) ([]*Event, error) {
	filter := bson.M{
		"department":     department,
		"event_category": EventCategoryDepartment,
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	return mdb.findEvents(ctx, filter, opts)
}

func (mdb *MongodbRepo) ListCommonEvents(ctx context.Context) ([]*Event, error) {
	filter := bson.M{"event_category": EventCategoryCommon}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return mdb.findEvents(ctx, filter, opts)
}

func (mdb *MongodbRepo) ListActiveCommonEvents(ctx context.Context) ([]*Event, error) {
	filter := bson.M{
		"event_category": EventCategoryCommon,
		"is_active":      true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	return mdb.findEvents(ctx, filter, opts)
}

func (mdb *MongodbRepo) findEvents(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Event, error) {
	col := mdb.collection(EventsColName)

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding events: %v", err)
	}
	defer cursor.Close(ctx)

	var events []*Event
	for cursor.Next(ctx) {
		var e Event
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("error decoding event: %v", err)
		}
		events = append(events, &e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return events, nil
}
