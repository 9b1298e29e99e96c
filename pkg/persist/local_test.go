package persist

import (
	"context"
	"testing"

	"github.com/matzehuels/gridboard/pkg/cache"
	apperr "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/layout"
)

func TestLocalCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := NewLocalCache(fc, nil, "alice")

	l, err := s.Load(ctx, layout.BreakpointLG)
	if err != nil || len(l) != 0 {
		t.Fatalf("Load on empty cache = %v, %v", l, err)
	}

	want := layout.Default(layout.BreakpointLG)
	if err := s.Save(ctx, layout.BreakpointLG, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx, layout.BreakpointLG)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !layout.Equal(got, want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	// Breakpoints and owners are separate entries.
	if l, _ := s.Load(ctx, layout.BreakpointMD); len(l) != 0 {
		t.Error("md should be empty")
	}
	if l, _ := NewLocalCache(fc, nil, "bob").Load(ctx, layout.BreakpointLG); len(l) != 0 {
		t.Error("another owner should not see alice's layout")
	}

	if err := s.Delete(ctx, layout.BreakpointLG); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if l, _ := s.Load(ctx, layout.BreakpointLG); len(l) != 0 {
		t.Error("Load after Delete should be empty")
	}
}

func TestLocalCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	fc, _ := cache.NewFileCache(t.TempDir())
	s := NewLocalCache(fc, nil, "alice")

	key := cache.NewDefaultKeyer().LayoutKey("alice", "lg")
	if err := fc.Set(ctx, key, []byte("{not a layout"), cache.TTLForever); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, layout.BreakpointLG); !apperr.Is(err, apperr.ErrCodeInvalidLayout) {
		t.Errorf("Load(corrupt) error = %v, want INVALID_LAYOUT", err)
	}

	// The chain treats it as empty.
	res := NewChain(nil, s, quietLogger()).Resolve(ctx, layout.BreakpointLG)
	if res.Source != SourceDefault {
		t.Errorf("Source = %s, want default", res.Source)
	}
}

func TestLocalCacheNilCache(t *testing.T) {
	ctx := context.Background()
	s := NewLocalCache(nil, nil, "alice")
	if err := s.Save(ctx, layout.BreakpointLG, layout.Default(layout.BreakpointLG)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if l, err := s.Load(ctx, layout.BreakpointLG); err != nil || len(l) != 0 {
		t.Errorf("NullCache-backed Load = %v, %v; want empty", l, err)
	}
}
