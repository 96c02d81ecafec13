// Package mongodb implements the core repositories on MongoDB, one
// collection per entity in each region's database.
package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Akr1040317/hiveUniDash/core"
)

// Collection names, shared by every region.
const (
	usersCollection     = "users"
	contentCollection   = "content"
	bugsCollection      = "bugs"
	featuresCollection  = "features"
	eventsCollection    = "events"
	quizzesCollection   = "quizzes"
	analyticsCollection = "analytics"
)

// buildFilter converts a cleaned core.Filter to a query document. Slices
// become $in matches; date_from/date_to become an inclusive range on the
// date field.
func buildFilter(filter core.Filter) bson.M {
	query := bson.M{}
	dateRange := bson.M{}
	for key, val := range filter {
		switch key {
		case "date_from":
			dateRange["$gte"] = val
		case "date_to":
			dateRange["$lte"] = val
		default:
			switch v := val.(type) {
			case []string:
				query[key] = bson.M{"$in": v}
			case []interface{}:
				query[key] = bson.M{"$in": v}
			default:
				query[key] = v
			}
		}
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	return query
}

func sortOpts(ord core.Ordering) *options.FindOptions {
	direction := -1
	if ord.Ascending {
		direction = 1
	}
	return options.Find().SetSort(bson.D{{Key: ord.Field, Value: direction}})
}

// updateDoc wraps field changes in $set and stamps updated_at.
func updateDoc(fields core.Filter) bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	for key, val := range fields {
		set[key] = val
	}
	return bson.M{"$set": set}
}

// findOneAndUpdate applies fields to a document and decodes the merged
// result, mapping a missing document to notFound.
func findOneAndUpdate(ctx context.Context, coll *mongo.Collection, id string, fields core.Filter, dest interface{}, notFound error) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, updateDoc(fields), opts).Decode(dest)
	if err == mongo.ErrNoDocuments {
		return notFound
	}
	return err
}

func findOne(ctx context.Context, coll *mongo.Collection, id string, dest interface{}, notFound error) error {
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(dest)
	if err == mongo.ErrNoDocuments {
		return notFound
	}
	return err
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string, notFound error) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}
