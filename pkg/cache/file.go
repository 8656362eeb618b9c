package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps rendered artifacts on disk between CLI runs. Each
// entry is a JSON envelope holding the artifact bytes, the key it was
// stored under, and its expiry. Envelopes shard into subdirectories by
// key digest so a long-lived cache directory stays listable.
type FileCache struct {
	root string
}

// NewFileCache opens a file cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{root: dir}, nil
}

// envelope is the on-disk form of one cached render. Key records what
// the artifact was stored under, so a damaged or misplaced envelope is
// evicted rather than served.
type envelope struct {
	Key       string    `json:"key"`
	Artifact  []byte    `json:"artifact"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

func (e *envelope) expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// Get retrieves a cached artifact. Unreadable, mismatched, and expired
// envelopes are evicted and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e envelope
	if err := json.Unmarshal(data, &e); err != nil || e.Key != key || e.expired() {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Artifact, true, nil
}

// Set stores an artifact. A zero ttl stores it without expiry. The
// envelope lands via a temporary file and rename, so an interrupted
// write cannot leave a truncated entry behind.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := envelope{Key: key, Artifact: data, StoredAt: time.Now()}
	if ttl > 0 {
		e.ExpiresAt = e.StoredAt.Add(ttl)
	}
	blob, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "envelope-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes an entry. Deleting a missing entry is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Close does nothing; the file cache holds no open handles.
func (c *FileCache) Close() error { return nil }

// entryPath maps a key to its envelope file. The first two digest
// characters become a subdirectory, spreading entries across 256
// shards.
func (c *FileCache) entryPath(key string) string {
	digest := Hash([]byte(key))
	return filepath.Join(c.root, digest[:2], digest[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
