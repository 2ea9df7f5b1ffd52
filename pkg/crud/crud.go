package crud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/mongocrud/pkg/logger"
	"github.com/dmitrymomot/mongocrud/pkg/mongo"
)

// CRUD binds one database and collection to a Connector. It holds no
// connection itself and is safe for concurrent use.
type CRUD struct {
	database   string
	collection string
	connector  *mongo.Connector
	logger     *slog.Logger
}

// New returns a facade for database.collection. Without WithConnector it
// builds a connector from the process environment; nothing is dialed until
// the first operation.
func New(database, collection string, opts ...Option) (*CRUD, error) {
	database = strings.TrimSpace(database)
	collection = strings.TrimSpace(collection)
	if database == "" {
		return nil, ErrMissingDatabase
	}
	if collection == "" {
		return nil, ErrMissingCollection
	}

	o := &crudOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	if o.connector == nil {
		c, err := mongo.NewConnector(mongo.Config{}, mongo.WithLogger(o.logger))
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		o.connector = c
	}

	return &CRUD{
		database:   database,
		collection: collection,
		connector:  o.connector,
		logger: o.logger.With(
			logger.Component("crud"),
			logger.Database(database),
			logger.Collection(collection),
		),
	}, nil
}

// Database returns the bound database name.
func (c *CRUD) Database() string { return c.database }

// Collection returns the bound collection name.
func (c *CRUD) Collection() string { return c.collection }

// Connector returns the connector operations run through.
func (c *CRUD) Connector() *mongo.Connector { return c.connector }

func (c *CRUD) coll(ctx context.Context) (mongo.Collection, error) {
	conn, err := c.connector.Connection(ctx)
	if err != nil {
		return nil, err
	}
	return conn.Collection(c.database, c.collection), nil
}

// Create inserts doc and writes the generated identifier back into doc["_id"].
// A doc that already carries an ObjectID _id is inserted under that id.
func (c *CRUD) Create(ctx context.Context, doc Document) (bson.ObjectID, error) {
	const op = "create"
	start := time.Now()

	if doc == nil {
		return bson.NilObjectID, ErrNilDocument
	}
	if id, ok := doc["_id"]; ok {
		if _, isOID := id.(bson.ObjectID); !isOID {
			return bson.NilObjectID, fmt.Errorf("%w: %T", ErrUnexpectedIdentifier, id)
		}
	}

	coll, err := c.coll(ctx)
	if err != nil {
		return bson.NilObjectID, c.fail(ctx, op, start, err)
	}

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return bson.NilObjectID, c.fail(ctx, op, start, err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, c.fail(ctx, op, start, fmt.Errorf("%w: %T", ErrUnexpectedIdentifier, res.InsertedID))
	}
	doc["_id"] = id

	c.done(ctx, op, start, 1)
	return id, nil
}

// Read returns the documents addressed by target. Identifier targets yield at
// most one document and ignore opts. Query targets are paged by Skip, Limit
// and Sort and drained eagerly. The result is never nil on success.
func (c *CRUD) Read(ctx context.Context, target Target, opts ...ReadOption) ([]Document, error) {
	const op = "read"
	start := time.Now()

	filter, single, err := resolve(target)
	if err != nil {
		return nil, err
	}

	if single {
		doc, err := c.findOne(ctx, filter)
		if err != nil {
			return nil, c.fail(ctx, op, start, err)
		}
		if doc == nil {
			c.done(ctx, op, start, 0)
			return []Document{}, nil
		}
		c.done(ctx, op, start, 1)
		return []Document{doc}, nil
	}

	ro := defaultReadOptions()
	for _, opt := range opts {
		opt(&ro)
	}
	if err := ro.validate(); err != nil {
		return nil, err
	}

	coll, err := c.coll(ctx)
	if err != nil {
		return nil, c.fail(ctx, op, start, err)
	}

	findOpts := options.Find().SetSkip(ro.skip).SetLimit(ro.limit)
	if len(ro.sort) > 0 {
		findOpts.SetSort(ro.sort)
	}

	cur, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, c.fail(ctx, op, start, err)
	}

	docs := make([]Document, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, c.fail(ctx, op, start, err)
	}

	c.done(ctx, op, start, int64(len(docs)))
	return docs, nil
}

// ReadOne returns the first document addressed by target, or nil when none
// matches.
func (c *CRUD) ReadOne(ctx context.Context, target Target) (Document, error) {
	const op = "read_one"
	start := time.Now()

	filter, _, err := resolve(target)
	if err != nil {
		return nil, err
	}

	doc, err := c.findOne(ctx, filter)
	if err != nil {
		return nil, c.fail(ctx, op, start, err)
	}

	var n int64
	if doc != nil {
		n = 1
	}
	c.done(ctx, op, start, n)
	return doc, nil
}

func (c *CRUD) findOne(ctx context.Context, filter any) (Document, error) {
	coll, err := c.coll(ctx)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

// Update modifies the documents addressed by target and returns how many
// changed.
//
// A FullDocument target with a nil fragment (or the document itself as the
// fragment) replaces the stored body with the document minus _id. Identifier
// targets $set the fragment on one document, query targets on every match.
// The fragment's _id is never written and the caller's maps are not modified.
func (c *CRUD) Update(ctx context.Context, target Target, fragment Document) (int64, error) {
	const op = "update"
	start := time.Now()

	filter, single, err := resolve(target)
	if err != nil {
		return 0, err
	}

	if full, ok := target.(FullDocument); ok && (fragment == nil || sameMap(full.Document, fragment)) {
		body := withoutID(full.Document)
		if len(body) == 0 {
			return 0, ErrEmptyUpdate
		}

		coll, err := c.coll(ctx)
		if err != nil {
			return 0, c.fail(ctx, op, start, err)
		}
		res, err := coll.ReplaceOne(ctx, filter, body)
		if err != nil {
			return 0, c.fail(ctx, op, start, err)
		}
		c.done(ctx, op, start, res.ModifiedCount)
		return res.ModifiedCount, nil
	}

	body := withoutID(fragment)
	if len(body) == 0 {
		return 0, ErrEmptyUpdate
	}
	update := bson.D{{Key: "$set", Value: body}}

	coll, err := c.coll(ctx)
	if err != nil {
		return 0, c.fail(ctx, op, start, err)
	}

	var res *mongodriver.UpdateResult
	if single {
		res, err = coll.UpdateOne(ctx, filter, update)
	} else {
		res, err = coll.UpdateMany(ctx, filter, update)
	}
	if err != nil {
		return 0, c.fail(ctx, op, start, err)
	}

	c.done(ctx, op, start, res.ModifiedCount)
	return res.ModifiedCount, nil
}

// Delete removes the documents addressed by target and returns how many were
// removed. Identifier targets remove at most one document.
func (c *CRUD) Delete(ctx context.Context, target Target) (int64, error) {
	const op = "delete"
	start := time.Now()

	filter, single, err := resolve(target)
	if err != nil {
		return 0, err
	}

	coll, err := c.coll(ctx)
	if err != nil {
		return 0, c.fail(ctx, op, start, err)
	}

	var res *mongodriver.DeleteResult
	if single {
		res, err = coll.DeleteOne(ctx, filter)
	} else {
		res, err = coll.DeleteMany(ctx, filter)
	}
	if err != nil {
		return 0, c.fail(ctx, op, start, err)
	}

	c.done(ctx, op, start, res.DeletedCount)
	return res.DeletedCount, nil
}

func (c *CRUD) done(ctx context.Context, op string, start time.Time, n int64) {
	c.logger.DebugContext(ctx, "operation completed",
		logger.Operation(op),
		logger.Count(n),
		logger.Duration(time.Since(start)),
	)
}

func (c *CRUD) fail(ctx context.Context, op string, start time.Time, err error) error {
	c.logger.ErrorContext(ctx, "operation failed",
		logger.Operation(op),
		logger.Duration(time.Since(start)),
		logger.Error(err),
	)
	return err
}

func sameMap(a, b Document) bool {
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}
