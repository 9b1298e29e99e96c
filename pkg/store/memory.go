package store

import (
	"context"
	"sync"

	"github.com/matzehuels/gridboard/pkg/layout"
)

// MemoryStore keeps documents in memory. Contents are lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

func (s *MemoryStore) Get(ctx context.Context, owner string, bp layout.Breakpoint) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key(owner, bp)]
	if !ok {
		return nil, nil
	}
	return doc.clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key(doc.Owner, doc.Breakpoint)] = doc.clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, owner string, bp layout.Breakpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key(owner, bp))
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
