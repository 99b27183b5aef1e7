package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PersistenceMode reports whether store writes reach disk.
type PersistenceMode string

const (
	ModeDurable          PersistenceMode = "durable"
	ModeVolatileFallback PersistenceMode = "volatile-fallback"
)

// Sentinel errors shared by the typed stores.
var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrSlugTaken  = errors.New("slug already in use")
)

// collection is a JSON-file-backed list of records with an in-memory cache.
// The file is re-read before every operation so concurrent processes writing
// the same file converge on last-writer-wins, and saves go through a temp
// file plus rename so readers never observe a half-written file. When the
// filesystem is unavailable the collection degrades to memory-only operation
// instead of failing its caller.
type collection[T any] struct {
	mu      sync.Mutex
	path    string
	logger  *zap.Logger
	mode    PersistenceMode
	records []T
}

func newCollection[T any](dir, file string, logger *zap.Logger) *collection[T] {
	c := &collection[T]{
		path:   filepath.Join(dir, file),
		logger: logger,
		mode:   ModeDurable,
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.degrade("create data directory", err)
		return c
	}
	c.mu.Lock()
	c.reload()
	c.mu.Unlock()
	return c
}

// Mode exposes the current persistence health for readiness checks.
func (c *collection[T]) Mode() PersistenceMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// reload refreshes the cache from disk. Callers hold c.mu.
func (c *collection[T]) reload() {
	if c.mode == ModeVolatileFallback {
		return
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		c.degrade("read store file", err)
		return
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		// Corrupt file: keep serving the in-memory records; the next
		// successful save rewrites a valid file.
		c.logger.Error("store file is not valid JSON; keeping in-memory records",
			zap.String("path", c.path), zap.Error(err))
		return
	}
	c.records = records
}

// persist writes the full cache to disk atomically. Callers hold c.mu.
// I/O failures degrade to memory-only operation and are never propagated.
func (c *collection[T]) persist() {
	if c.mode == ModeVolatileFallback {
		return
	}
	data, err := json.MarshalIndent(c.records, "", "  ")
	if err != nil {
		c.degrade("encode store file", err)
		return
	}
	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		c.degrade("create temp store file", err)
		return
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		c.degrade("write temp store file", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		c.degrade("close temp store file", err)
		return
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		c.degrade("rename store file", err)
		return
	}
}

func (c *collection[T]) degrade(op string, err error) {
	if c.mode == ModeVolatileFallback {
		return
	}
	c.mode = ModeVolatileFallback
	c.logger.Warn("filesystem unavailable; store continues in memory only",
		zap.String("op", op),
		zap.String("path", c.path),
		zap.Error(err))
}

// snapshot reloads and returns a copy of all records.
func (c *collection[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload()
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

// update reloads, applies fn to a copy of the records, and persists the
// result when fn succeeds.
func (c *collection[T]) update(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload()
	next, err := fn(append([]T(nil), c.records...))
	if err != nil {
		return err
	}
	c.records = next
	c.persist()
	return nil
}

// EnsureDataDir probes the preferred data directory for writability and falls
// back to a temp path for restrictive runtimes. Data under the fallback does
// not survive a host restart.
func EnsureDataDir(preferred string, logger *zap.Logger) string {
	if dirWritable(preferred) {
		return preferred
	}
	fallback := filepath.Join(os.TempDir(), "print-shop-data")
	if dirWritable(fallback) {
		logger.Warn("data directory not writable; using temp fallback",
			zap.String("preferred", preferred),
			zap.String("fallback", fallback))
		return fallback
	}
	logger.Warn("no writable data directory; stores will run in memory only",
		zap.String("preferred", preferred))
	return preferred
}

func dirWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	probe, err := os.CreateTemp(dir, ".write-probe-*")
	if err != nil {
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newRecordID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
