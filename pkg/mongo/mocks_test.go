package mongo_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/mongocrud/pkg/mongo"
)

// MockDriver is a mock implementation of the mongo.Driver interface
type MockDriver struct {
	mock.Mock
}

func (m *MockDriver) Collection(database, collection string) mongo.Collection {
	args := m.Called(database, collection)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(mongo.Collection)
}

func (m *MockDriver) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDriver) Disconnect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// newMockDriver returns a driver that accepts any number of pings and one disconnect.
func newMockDriver() *MockDriver {
	d := &MockDriver{}
	d.On("Ping", mock.Anything).Return(nil).Maybe()
	d.On("Disconnect", mock.Anything).Return(nil).Maybe()
	return d
}

// countingDialer hands out a fresh mock driver per dial and records each dial.
type countingDialer struct {
	drivers []*MockDriver
	uris    []string
	opts    []mongo.ClientOptions
	err     error
}

func (d *countingDialer) Dial(_ context.Context, uri string, opts mongo.ClientOptions) (mongo.Driver, error) {
	d.uris = append(d.uris, uri)
	d.opts = append(d.opts, opts)
	if d.err != nil {
		return nil, d.err
	}
	drv := newMockDriver()
	d.drivers = append(d.drivers, drv)
	return drv, nil
}
