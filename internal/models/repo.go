package models

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	EventsColName        = "events"
	RegistrationsColName = "registrations"
	UsersColName         = "users"
)

// Names of the unique indexes created at startup. The registration repo
// inspects duplicate-key errors for these to tell a duplicate (user,event)
// pair apart from a unique-code collision.
const (
	UserEventIndexName  = "uniq_user_event"
	UniqueCodeIndexName = "uniq_code"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) collection(name string) *mongo.Collection {
	return mdb.mongodbClient.Database(mdb.dbName).Collection(name)
}
