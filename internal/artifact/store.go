// Package artifact manages the bounded lifetime of generated export
// files: registration, timed deletion and a startup sweep of stale
// leftovers.
package artifact

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultTTL is how long an artifact stays readable after creation.
const DefaultTTL = 5 * time.Minute

// LocatorMode selects how artifacts are handed to callers.
type LocatorMode string

const (
	// LocatorFile returns the artifact's path on disk.
	LocatorFile LocatorMode = "file"
	// LocatorInline returns the artifact bytes base64-encoded.
	LocatorInline LocatorMode = "inline"
)

// Artifact is a generated, time-limited downloadable file.
type Artifact struct {
	ID        string    `json:"id"`
	Path      string    `json:"path,omitempty"`
	Data      string    `json:"data,omitempty"` // base64, inline mode only
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store owns the artifact directory and the deletion timers. One store
// is constructed per process; its timers run independently of any job
// or client read, so a read close to expiry races the deletion and may
// find the file already gone.
type Store struct {
	dir    string
	ttl    time.Duration
	mode   LocatorMode
	logger *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// NewStore creates the artifact directory if needed. A non-positive
// ttl falls back to DefaultTTL.
func NewStore(dir string, ttl time.Duration, mode LocatorMode, logger *slog.Logger) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if mode == "" {
		mode = LocatorFile
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{
		dir:    dir,
		ttl:    ttl,
		mode:   mode,
		logger: logger,
		timers: make(map[string]*time.Timer),
	}, nil
}

// Dir returns the directory exports are written into.
func (s *Store) Dir() string { return s.dir }

// TTL returns the artifact time-to-live.
func (s *Store) TTL() time.Duration { return s.ttl }

// Sweep removes files older than the TTL left behind by a prior
// abnormal termination. Called once at startup, before serving.
func (s *Store) Sweep() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("sweep artifact dir: %w", err)
	}
	cutoff := time.Now().Add(-s.ttl)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.dir, entry.Name())
			if err := os.Remove(path); err != nil {
				s.logger.Warn("stale artifact removal failed", "path", path, "error", err)
				continue
			}
			s.logger.Info("stale artifact removed", "path", path)
		}
	}
	return nil
}

// Track registers a finished file and schedules its deletion after the
// TTL. Deletion happens exactly once, regardless of whether the
// artifact is ever read; a failed delete is logged and swallowed so it
// can never fail a result already returned to the caller.
func (s *Store) Track(path string) (*Artifact, error) {
	id := filepath.Base(path)
	now := time.Now()

	a := &Artifact{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	switch s.mode {
	case LocatorInline:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read artifact for inline locator: %w", err)
		}
		a.Data = base64.StdEncoding.EncodeToString(data)
	default:
		a.Path = path
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("artifact store closed")
	}
	s.timers[id] = time.AfterFunc(s.ttl, func() {
		s.expire(id, path)
	})

	s.logger.Info("artifact tracked", "id", id, "expires_at", a.ExpiresAt)
	return a, nil
}

// Open returns the artifact file for reading. An expired or unknown id
// yields a not-found error.
func (s *Store) Open(id string) (*os.File, error) {
	// Base only: ids never address outside the artifact dir.
	path := filepath.Join(s.dir, filepath.Base(id))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact %s not found (expired or never created)", id)
		}
		return nil, fmt.Errorf("open artifact %s: %w", id, err)
	}
	return f, nil
}

// Close stops all pending deletion timers. Files already on disk are
// left for the next startup sweep.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Store) expire(id, path string) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("artifact deletion failed", "id", id, "error", err)
		return
	}
	s.logger.Info("artifact expired", "id", id)
}
