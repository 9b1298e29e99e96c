// Package store provides the server-side document stores of the layout
// service.
//
// Each document holds one owner's layout at one breakpoint. Implementations
// exist for different deployments:
//   - memory: In-memory storage for development/testing
//   - file: JSON files under a data directory for single-instance deployments
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for multi-instance deployments
//
// All stores are safe for concurrent use. Writes are last-write-wins; every
// Put stamps a fresh revision.
//
// # Usage
//
//	s, err := store.Open(ctx, store.Config{Backend: store.BackendRedis,
//	    Redis: store.RedisConfig{Addr: "localhost:6379"}})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	doc, err := s.Get(ctx, "alice", layout.BreakpointLG)
//	if doc == nil {
//	    // nothing stored yet
//	}
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridboard/pkg/layout"
)

// Document is one stored layout.
type Document struct {
	Owner      string            `json:"owner" bson:"owner"`
	Breakpoint layout.Breakpoint `json:"breakpoint" bson:"breakpoint"`
	Layout     layout.Layout     `json:"layout" bson:"layout"`
	Revision   string            `json:"revision" bson:"revision"`
	UpdatedAt  time.Time         `json:"updatedAt" bson:"updated_at"`
}

// NewDocument creates a document with a fresh revision, stamped now.
func NewDocument(owner string, bp layout.Breakpoint, l layout.Layout) *Document {
	if l == nil {
		l = layout.Layout{}
	}
	return &Document{
		Owner:      owner,
		Breakpoint: bp,
		Layout:     l.Clone(),
		Revision:   uuid.NewString(),
		UpdatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (d *Document) clone() *Document {
	c := *d
	c.Layout = d.Layout.Clone()
	return &c
}

// Store is the interface for layout document backends.
type Store interface {
	// Get retrieves the document for owner and bp.
	// Returns nil, nil if no document exists.
	Get(ctx context.Context, owner string, bp layout.Breakpoint) (*Document, error)

	// Put stores doc, replacing any previous document for its owner and
	// breakpoint.
	Put(ctx context.Context, doc *Document) error

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, owner string, bp layout.Breakpoint) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends returns every supported backend name.
func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendRedis, BackendMongo}
}

// Config selects and configures a backend.
type Config struct {
	Backend string
	DataDir string
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(cfg.DataDir)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.Redis)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// key is the backend-neutral identity of a document.
func key(owner string, bp layout.Breakpoint) string {
	return owner + ":" + bp.String()
}
