package crud_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/mongocrud/pkg/mongo"
)

// MockCollection is a mock implementation of the mongo.Collection interface
type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongodriver.InsertOneResult, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongodriver.InsertOneResult), args.Error(1)
}

func (m *MockCollection) FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongodriver.SingleResult {
	args := m.Called(ctx, filter)
	return args.Get(0).(*mongodriver.SingleResult)
}

func (m *MockCollection) Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongodriver.Cursor, error) {
	args := m.Called(ctx, filter, findOptions(opts))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongodriver.Cursor), args.Error(1)
}

func (m *MockCollection) ReplaceOne(ctx context.Context, filter, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongodriver.UpdateResult, error) {
	args := m.Called(ctx, filter, replacement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongodriver.UpdateResult), args.Error(1)
}

func (m *MockCollection) UpdateOne(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongodriver.UpdateResult, error) {
	args := m.Called(ctx, filter, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongodriver.UpdateResult), args.Error(1)
}

func (m *MockCollection) UpdateMany(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateManyOptions]) (*mongodriver.UpdateResult, error) {
	args := m.Called(ctx, filter, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongodriver.UpdateResult), args.Error(1)
}

func (m *MockCollection) DeleteOne(ctx context.Context, filter any, opts ...options.Lister[options.DeleteOneOptions]) (*mongodriver.DeleteResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongodriver.DeleteResult), args.Error(1)
}

func (m *MockCollection) DeleteMany(ctx context.Context, filter any, opts ...options.Lister[options.DeleteManyOptions]) (*mongodriver.DeleteResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongodriver.DeleteResult), args.Error(1)
}

// findOptions flattens option builders so tests can assert on skip, limit and sort.
func findOptions(opts []options.Lister[options.FindOptions]) options.FindOptions {
	var fo options.FindOptions
	for _, l := range opts {
		for _, set := range l.List() {
			_ = set(&fo)
		}
	}
	return fo
}

// stubDriver serves a fixed collection and records which one was requested.
type stubDriver struct {
	coll        mongo.Collection
	database    string
	collection  string
	disconnects int
}

func (d *stubDriver) Collection(database, collection string) mongo.Collection {
	d.database, d.collection = database, collection
	return d.coll
}

func (d *stubDriver) Ping(context.Context) error { return nil }

func (d *stubDriver) Disconnect(context.Context) error {
	d.disconnects++
	return nil
}
