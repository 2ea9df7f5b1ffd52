package mongo

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	DefaultHost     = "localhost"
	DefaultPort     = 27017
	DefaultDatabase = "admin"
)

// Config is a fully resolved connection configuration.
//
// When passed to NewConnector or ResolveConfig, set fields act as explicit
// overrides and zero fields fall through to the environment and then to the
// hard-coded defaults.
type Config struct {
	Username string        // DBUSER
	Password string        // DBPASS
	Host     string        // DBHOST, default localhost
	Port     int           // DBPORT, default 27017
	Database string        // DBNAME, default admin
	Options  ClientOptions // DBOPTS, MongoDB Extended JSON
	URL      string        // DBURL, derived with BuildURL when unset
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = redactedURL
	}
	c.URL = RedactURL(c.URL)
	return c
}

// envLayer is the environment slice of the configuration.
type envLayer struct {
	Username string `env:"DBUSER"`
	Password string `env:"DBPASS"`
	Host     string `env:"DBHOST" envDefault:"localhost"`
	Port     string `env:"DBPORT"`
	Database string `env:"DBNAME"`
	Options  string `env:"DBOPTS"`
	URL      string `env:"DBURL"`
}

// ClientOptions are driver settings layered on top of the connection string.
// Nil pointers and empty strings mean "not set". Field names follow the
// connection string option names so DBOPTS reads like a MongoDB URI option bag.
type ClientOptions struct {
	AppName                  string  `bson:"appName,omitempty"`
	ReplicaSet               string  `bson:"replicaSet,omitempty"`
	MaxPoolSize              *uint64 `bson:"maxPoolSize,omitempty"`
	MinPoolSize              *uint64 `bson:"minPoolSize,omitempty"`
	MaxIdleTimeMS            *int64  `bson:"maxIdleTimeMS,omitempty"`
	ConnectTimeoutMS         *int64  `bson:"connectTimeoutMS,omitempty"`
	ServerSelectionTimeoutMS *int64  `bson:"serverSelectionTimeoutMS,omitempty"`
	TimeoutMS                *int64  `bson:"timeoutMS,omitempty"`
	RetryWrites              *bool   `bson:"retryWrites,omitempty"`
	RetryReads               *bool   `bson:"retryReads,omitempty"`
	DirectConnection         *bool   `bson:"directConnection,omitempty"`
}

// DefaultClientOptions returns the options every connector starts from.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		ConnectTimeoutMS: ptr(int64(10 * time.Second / time.Millisecond)),
	}
}

// ParseClientOptions decodes a relaxed Extended JSON object. Unknown keys are
// ignored; an empty string yields zero options.
func ParseClientOptions(s string) (ClientOptions, error) {
	var o ClientOptions
	if s == "" {
		return o, nil
	}
	if err := bson.UnmarshalExtJSON([]byte(s), false, &o); err != nil {
		return ClientOptions{}, fmt.Errorf("parse client options: %w", err)
	}
	return o, nil
}

// Merge returns o with every field set in over replacing the value in o.
func (o ClientOptions) Merge(over ClientOptions) ClientOptions {
	if over.AppName != "" {
		o.AppName = over.AppName
	}
	if over.ReplicaSet != "" {
		o.ReplicaSet = over.ReplicaSet
	}
	o.MaxPoolSize = override(o.MaxPoolSize, over.MaxPoolSize)
	o.MinPoolSize = override(o.MinPoolSize, over.MinPoolSize)
	o.MaxIdleTimeMS = override(o.MaxIdleTimeMS, over.MaxIdleTimeMS)
	o.ConnectTimeoutMS = override(o.ConnectTimeoutMS, over.ConnectTimeoutMS)
	o.ServerSelectionTimeoutMS = override(o.ServerSelectionTimeoutMS, over.ServerSelectionTimeoutMS)
	o.TimeoutMS = override(o.TimeoutMS, over.TimeoutMS)
	o.RetryWrites = override(o.RetryWrites, over.RetryWrites)
	o.RetryReads = override(o.RetryReads, over.RetryReads)
	o.DirectConnection = override(o.DirectConnection, over.DirectConnection)
	return o
}

// Apply copies the set fields onto driver client options.
func (o ClientOptions) Apply(co *options.ClientOptions) *options.ClientOptions {
	if o.AppName != "" {
		co.SetAppName(o.AppName)
	}
	if o.ReplicaSet != "" {
		co.SetReplicaSet(o.ReplicaSet)
	}
	if o.MaxPoolSize != nil {
		co.SetMaxPoolSize(*o.MaxPoolSize)
	}
	if o.MinPoolSize != nil {
		co.SetMinPoolSize(*o.MinPoolSize)
	}
	if o.MaxIdleTimeMS != nil {
		co.SetMaxConnIdleTime(millis(*o.MaxIdleTimeMS))
	}
	if o.ConnectTimeoutMS != nil {
		co.SetConnectTimeout(millis(*o.ConnectTimeoutMS))
	}
	if o.ServerSelectionTimeoutMS != nil {
		co.SetServerSelectionTimeout(millis(*o.ServerSelectionTimeoutMS))
	}
	if o.TimeoutMS != nil {
		co.SetTimeout(millis(*o.TimeoutMS))
	}
	if o.RetryWrites != nil {
		co.SetRetryWrites(*o.RetryWrites)
	}
	if o.RetryReads != nil {
		co.SetRetryReads(*o.RetryReads)
	}
	if o.DirectConnection != nil {
		co.SetDirect(*o.DirectConnection)
	}
	return co
}

// ResolveConfig layers explicit values over the environment over the defaults.
//
// environ is the environment to read; nil means the process environment.
// The URL comes from explicit.URL, then DBURL, then BuildURL over the resolved
// fields. The admin database default is applied after the URL is derived, so
// it never adds a path segment on its own. DBPORT and DBOPTS are only parsed
// when the explicit config does not set Port or Options, so a malformed value
// cannot fail a config that overrides it.
func ResolveConfig(explicit Config, environ map[string]string) (Config, error) {
	layer, err := env.ParseAsWithOptions[envLayer](env.Options{Environment: environ})
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	cfg := Config{
		Username: firstNonEmpty(explicit.Username, layer.Username),
		Password: firstNonEmpty(explicit.Password, layer.Password),
		Host:     firstNonEmpty(explicit.Host, layer.Host, DefaultHost),
		Port:     explicit.Port,
		Database: firstNonEmpty(explicit.Database, layer.Database),
		Options:  DefaultClientOptions().Merge(explicit.Options),
		URL:      firstNonEmpty(explicit.URL, layer.URL),
	}

	if cfg.Port == 0 && layer.Port != "" {
		port, err := strconv.Atoi(layer.Port)
		if err != nil {
			return Config{}, errors.Join(ErrInvalidConfig, fmt.Errorf("parse DBPORT: %w", err))
		}
		cfg.Port = port
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}

	if explicit.Options == (ClientOptions{}) {
		envOpts, err := ParseClientOptions(layer.Options)
		if err != nil {
			return Config{}, errors.Join(ErrInvalidConfig, err)
		}
		cfg.Options = DefaultClientOptions().Merge(envOpts)
	}

	if cfg.URL == "" {
		if cfg.Port < 1 || cfg.Port > 65535 {
			return Config{}, errors.Join(ErrInvalidConfig, fmt.Errorf("port %d out of range", cfg.Port))
		}
		cfg.URL = BuildURL(cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	}

	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}

	return cfg, nil
}

// LoadConfig resolves a configuration from the process environment alone.
func LoadConfig() (Config, error) {
	return ResolveConfig(Config{}, nil)
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. With no arguments it loads ./.env and treats
// a missing file as success.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func override[T any](base, over *T) *T {
	if over != nil {
		return over
	}
	return base
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func ptr[T any](v T) *T {
	return &v
}
