package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionIndexes is the single source of truth for index definitions.
var collectionIndexes = map[string][]mongo.IndexModel{
	usersCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	},
	clientsCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	projectsCollection: {
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	},
	tasksCollection: {
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_employees", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	},
	leaveCollection: {
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	},
	notificationsCollection: {
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "is_read", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	},
	clockCollection: {
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "clock_in", Value: -1}}},
		{Keys: bson.D{{Key: "clock_in", Value: 1}}},
	},
}
