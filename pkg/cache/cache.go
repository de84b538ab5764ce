// Package cache remembers which files were already clean under a given
// configuration so later runs can skip them.
//
// The cache is one msgpack file mapping paths to the SHA-256 of content that
// needed no fixing. It is tied to a signature of the tool version and the
// resolved rules; a different signature discards every entry.
package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/gophpfix/pkg/fsutil"
)

// schemaVersion changes whenever the file layout does.
const schemaVersion uint16 = 1

// fileMode is the mode of written cache files.
const fileMode = 0o644

// payload is the on-disk layout.
type payload struct {
	Schema    uint16            `msgpack:"schema"`
	Signature string            `msgpack:"signature"`
	Hashes    map[string]string `msgpack:"hashes"`
}

// Signature is everything besides a file's content that decides how it is
// fixed.
type Signature struct {
	Version      string               `msgpack:"version"`
	Fixers       []string             `msgpack:"fixers"`
	Rules        map[string]RuleEntry `msgpack:"rules"`
	RiskyAllowed bool                 `msgpack:"risky_allowed"`
	Indent       string               `msgpack:"indent"`
	LineEnding   string               `msgpack:"line_ending"`
	MaxPasses    int                  `msgpack:"max_passes"`

	// Skip and Only are the per-path fixer rules.
	Skip map[string][]string `msgpack:"skip,omitempty"`
	Only map[string][]string `msgpack:"only,omitempty"`
}

// RuleEntry is one configured rule as it enters the signature.
type RuleEntry struct {
	Enabled bool           `msgpack:"enabled"`
	Options map[string]any `msgpack:"options,omitempty"`
}

// Digest returns a stable hex hash of s. Map keys are sorted before
// hashing, so equal signatures always digest equally.
func (s Signature) Digest() (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("encode signature: %w", err)
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

// Cache is the in-memory view of a cache file. Safe for concurrent use.
type Cache struct {
	path      string
	signature string

	mu     sync.RWMutex
	hashes map[string]string
	dirty  bool

	// Invalidated says why previous entries were dropped on open, or "".
	Invalidated string
}

// Open loads the cache at path for signature. A missing, unreadable or
// foreign file yields an empty cache; only I/O errors other than a missing
// file are returned.
func Open(path, signature string) (*Cache, error) {
	c := &Cache{path: path, signature: signature, hashes: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var p payload
	switch err := msgpack.Unmarshal(data, &p); {
	case err != nil:
		c.Invalidated = "unreadable cache file"
	case p.Schema != schemaVersion:
		c.Invalidated = fmt.Sprintf("cache schema %d, want %d", p.Schema, schemaVersion)
	case p.Signature != signature:
		c.Invalidated = "configuration or version changed"
	default:
		if p.Hashes != nil {
			c.hashes = p.Hashes
		}
		return c, nil
	}
	c.dirty = true
	return c, nil
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	return c.path
}

// IsClean reports whether path was recorded as needing no changes with
// exactly this content digest.
func (c *Cache) IsClean(path, digest string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hashes[key(path)] == digest
}

// MarkClean records that path with digest needs no changes.
func (c *Cache) MarkClean(path, digest string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key(path)
	if c.hashes[k] != digest {
		c.hashes[k] = digest
		c.dirty = true
	}
}

// Forget drops path, e.g. after it failed or still needs fixing.
func (c *Cache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key(path)
	if _, ok := c.hashes[k]; ok {
		delete(c.hashes, k)
		c.dirty = true
	}
}

// Len returns the number of recorded files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hashes)
}

// Save writes the cache atomically if anything changed since Open.
func (c *Cache) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	err := enc.Encode(payload{Schema: schemaVersion, Signature: c.signature, Hashes: maps.Clone(c.hashes)})
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, c.path, buf.Bytes(), fileMode); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	c.dirty = false
	return nil
}

// key normalizes paths so "./a.php" and "a.php" share an entry.
func key(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
