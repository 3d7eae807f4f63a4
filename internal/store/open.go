package store

import (
	"context"
	"fmt"
	"path/filepath"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Driver      string
	Dir         string // file driver; also the default parent of the SQLite database
	SQLitePath  string
	RedisURL    string
	PostgresURL string
}

// Open builds the Store for opts.Driver. The returned close function is never
// nil.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), noop, nil

	case DriverFile, "":
		f, err := NewFile(opts.Dir)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil

	case DriverSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = filepath.Join(opts.Dir, "prayer-planner.db")
		}
		s, err := NewSQLite(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil

	case DriverRedis:
		r, err := NewRedis(ctx, opts.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return r, r.Close, nil

	case DriverPostgres:
		p, err := NewPostgres(ctx, opts.PostgresURL)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnsupportedDriver, opts.Driver)
	}
}
