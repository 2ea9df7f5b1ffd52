package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection is the subset of *mongo.Collection the CRUD layer issues.
type Collection interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	ReplaceOne(ctx context.Context, filter, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongo.UpdateResult, error)
	UpdateOne(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
	UpdateMany(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateManyOptions]) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...options.Lister[options.DeleteOneOptions]) (*mongo.DeleteResult, error)
	DeleteMany(ctx context.Context, filter any, opts ...options.Lister[options.DeleteManyOptions]) (*mongo.DeleteResult, error)
}

var _ Collection = (*mongo.Collection)(nil)

// Driver is a connected store client.
type Driver interface {
	Collection(database, collection string) Collection
	Ping(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// Dialer opens a Driver for a connection string.
type Dialer func(ctx context.Context, uri string, opts ClientOptions) (Driver, error)

// Dial is the default Dialer. It connects with the official driver and pings
// the deployment before returning; a failed ping disconnects the client.
func Dial(ctx context.Context, uri string, opts ClientOptions) (Driver, error) {
	client, err := mongo.Connect(opts.Apply(options.Client().ApplyURI(uri)))
	if err != nil {
		return nil, errors.Join(ErrFailedToConnect, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, errors.Join(ErrFailedToConnect, err)
	}

	return NewDriver(client), nil
}

// NewDriver adapts an already connected client.
func NewDriver(client *mongo.Client) Driver {
	return &clientDriver{client: client}
}

type clientDriver struct {
	client *mongo.Client
}

func (d *clientDriver) Collection(database, collection string) Collection {
	return d.client.Database(database).Collection(collection)
}

func (d *clientDriver) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

func (d *clientDriver) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
