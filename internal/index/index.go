// Package index manages the per-namespace name index file. Only secret
// names are recorded here; the values live in the OS keystore via the
// backend package. The index is a best-effort cache of backend contents:
// it can reference names deleted out-of-band, which the store package
// repairs on the next read-path operation.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EntryMeta holds per-name metadata. Only presence of the key matters;
// Created is kept for forward compatibility.
type EntryMeta struct {
	Created int64 `json:"created,omitempty"`
}

// ErrCorrupt is returned when the index file exists but cannot be parsed.
// It is never auto-repaired; losing the file silently would mask data loss.
type ErrCorrupt struct {
	Path string
	Err  error
}

func (e *ErrCorrupt) Error() string {
	return fmt.Sprintf("corrupt index file %s: %v", e.Path, e.Err)
}

func (e *ErrCorrupt) Unwrap() error { return e.Err }

// Index provides access to one namespace's name index file at
// <baseDir>/metadata_<namespace>.json. Every operation re-reads the file,
// so concurrent invocations observe each other's completed writes.
type Index struct {
	path string
	mu   sync.Mutex
	data map[string]EntryMeta
}

// New returns an Index for the given namespace. The file is created
// lazily on the first Add; a missing file is an empty index.
func New(baseDir, namespace string) *Index {
	return &Index{path: filepath.Join(baseDir, "metadata_"+safeName(namespace)+".json")}
}

// safeName makes a namespace usable as a filename component.
func safeName(namespace string) string {
	r := strings.NewReplacer("/", "_", "\\", "_")
	return r.Replace(namespace)
}

// Path returns the location of the index file.
func (ix *Index) Path() string { return ix.path }

// load reads the file into ix.data. Caller must hold ix.mu.
func (ix *Index) load() error {
	ix.data = make(map[string]EntryMeta)

	raw, err := os.ReadFile(ix.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read index file %s: %w", ix.path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrCorrupt{Path: ix.path, Err: err}
	}

	// Older index files wrapped a plain name array: {"secrets": ["A","B"]}.
	if legacy, ok := doc["secrets"]; ok && len(doc) == 1 {
		var names []string
		if err := json.Unmarshal(legacy, &names); err == nil {
			for _, n := range names {
				ix.data[n] = EntryMeta{}
			}
			return nil
		}
	}

	for name, rawMeta := range doc {
		var meta EntryMeta
		if err := json.Unmarshal(rawMeta, &meta); err != nil {
			return &ErrCorrupt{Path: ix.path, Err: err}
		}
		ix.data[name] = meta
	}
	return nil
}

// save rewrites the whole index file atomically: marshal, write a
// uniquely-named temp file, rename into place. The unique temp name keeps
// two racing processes from clobbering each other's staging file; the
// rename itself is the last writer's to win. Caller must hold ix.mu.
func (ix *Index) save() error {
	if err := os.MkdirAll(filepath.Dir(ix.path), 0o700); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	data, err := json.MarshalIndent(ix.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	tmp := ix.path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write tmp index: %w", err)
	}
	if err := os.Rename(tmp, ix.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename index into place: %w", err)
	}
	return nil
}

// Names returns all indexed names in sorted order.
func (ix *Index) Names() ([]string, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if err := ix.load(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ix.data))
	for n := range ix.data {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Count returns the number of indexed names.
func (ix *Index) Count() (int, error) {
	names, err := ix.Names()
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// Add records a name and persists immediately. Adding a name that is
// already present is a no-op.
func (ix *Index) Add(name string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if err := ix.load(); err != nil {
		return err
	}
	if _, ok := ix.data[name]; ok {
		return nil
	}
	ix.data[name] = EntryMeta{Created: time.Now().Unix()}
	return ix.save()
}

// Remove drops a name and persists immediately. Removing an absent name
// is a no-op, never an error.
func (ix *Index) Remove(name string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if err := ix.load(); err != nil {
		return err
	}
	if _, ok := ix.data[name]; !ok {
		return nil
	}
	delete(ix.data, name)
	return ix.save()
}
