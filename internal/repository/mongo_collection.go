package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection persists documents of type T in a MongoDB collection.
type MongoCollection[T any, PT documentPtr[T]] struct {
	coll    *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

// NewMongoCollection binds a collection of db. timeout bounds every operation.
func NewMongoCollection[T any, PT documentPtr[T]](db *mongo.Database, name string, timeout time.Duration) *MongoCollection[T, PT] {
	return &MongoCollection[T, PT]{
		coll:    db.Collection(name),
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Find returns every document matching filter.
func (c *MongoCollection[T, PT]) Find(ctx context.Context, filter Filter, sort Sort) ([]T, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	opts := options.Find()
	if sort.Field != "" {
		dir := 1
		if sort.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: sort.Field, Value: dir}})
	}

	cur, err := c.coll.Find(ctx, mongoFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}

	items := make([]T, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return items, nil
}

// FindOne returns the first document matching filter or ErrNotFound.
func (c *MongoCollection[T, PT]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	var doc T
	if err := c.coll.FindOne(ctx, mongoFilter(filter)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find one %s: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

// Insert stores doc, assigning an ObjectID hex string when it has no id yet.
func (c *MongoCollection[T, PT]) Insert(ctx context.Context, doc *T) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	d := PT(doc)
	if d.DocumentID() == "" {
		d.SetDocumentID(primitive.NewObjectID().Hex())
	}
	d.Touch(c.now())

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert %s: %w", c.coll.Name(), err)
	}
	return nil
}

// Update sets the listed fields of document id from doc, keeping every other stored field.
// doc is refreshed with the stored document.
func (c *MongoCollection[T, PT]) Update(ctx context.Context, id string, doc *T, fields []string) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	d := PT(doc)
	d.SetDocumentID(id)
	d.Touch(c.now())

	update, err := updateDocument(doc, fields)
	if err != nil {
		return fmt.Errorf("encode %s update: %w", c.coll.Name(), err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts)
	if err := res.Decode(doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("update %s: %w", c.coll.Name(), err)
	}
	return nil
}

// Delete removes document id.
func (c *MongoCollection[T, PT]) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func mongoFilter(filter Filter) bson.D {
	out := bson.D{}
	for _, k := range filter.Keys() {
		out = append(out, bson.E{Key: k, Value: filter[k]})
	}
	return out
}

// updateDocument builds the $set/$unset operators for the listed fields of doc.
// A listed field the encoder omits (an emptied omitempty value) is unset.
func updateDocument(doc interface{}, fields []string) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var encoded bson.M
	if err := bson.Unmarshal(raw, &encoded); err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": encoded["updatedAt"]}
	unset := bson.M{}
	for _, f := range writableFields(fields) {
		if v, ok := encoded[f]; ok {
			set[f] = v
		} else {
			unset[f] = ""
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update, nil
}
