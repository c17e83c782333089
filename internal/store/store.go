// Package store composes a secret backend with the name index and keeps
// the two synchronized. The backend is the source of truth for values and
// existence; the index only serves listing. Divergence (a name indexed but
// gone from the backend) is tolerated and repaired the next time a
// read-path operation touches the name.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akihiro/secrets-cli/internal/backend"
	"github.com/akihiro/secrets-cli/internal/index"
)

// DefaultNamespace is the keystore service bucket used when none is configured.
const DefaultNamespace = "ai-keys"

// IndexWarning reports that a secret was durably written to the backend
// but the index file could not be updated. The secret IS stored; callers
// should treat this as a warning, not a failure. The stale index entry is
// repaired by a later mutation or reconciliation through export.
type IndexWarning struct {
	Name string
	Err  error
}

func (w *IndexWarning) Error() string {
	return fmt.Sprintf("secret %q stored, but index update failed: %v", w.Name, w.Err)
}

func (w *IndexWarning) Unwrap() error { return w.Err }

// Status describes the store's local state without touching the backend.
type Status struct {
	Namespace   string `json:"namespace"`
	Backend     string `json:"backend"`
	SecretCount int    `json:"secret_count"`
	IndexPath   string `json:"index_path"`
}

// Store manages secrets for a single namespace.
type Store struct {
	namespace string
	backend   backend.Backend
	index     *index.Index
}

// New creates a Store for the given namespace, keeping its index under
// baseDir. The namespace must be non-empty.
func New(namespace, baseDir string, be backend.Backend) (*Store, error) {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return nil, errors.New("namespace cannot be empty")
	}
	return &Store{
		namespace: namespace,
		backend:   be,
		index:     index.New(baseDir, namespace),
	}, nil
}

// Namespace returns the store's namespace.
func (s *Store) Namespace() string { return s.namespace }

// IndexPath returns the location of the namespace's index file.
func (s *Store) IndexPath() string { return s.index.Path() }

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("secret name cannot be empty")
	}
	return name, nil
}

// Set stores a secret in the backend, then records its name in the index.
// A backend failure leaves the index untouched, so the index never claims
// names the backend refused. If the backend write succeeds but the index
// write fails, Set returns *IndexWarning: the value is stored and callers
// must not treat the operation as failed.
func (s *Store) Set(name, value string) error {
	name, err := validName(name)
	if err != nil {
		return err
	}
	if value == "" {
		return errors.New("secret value cannot be empty")
	}
	if err := s.backend.Set(s.namespace, name, value); err != nil {
		return err
	}
	if err := s.index.Add(name); err != nil {
		return &IndexWarning{Name: name, Err: err}
	}
	return nil
}

// Get returns the secret value for name, always via a real backend read:
// a name listed in the index but deleted out-of-band reports not-found
// here, never a stale hit. Discovering such a ghost entry also drops it
// from the index (best effort; not-found still wins if the drop fails).
func (s *Store) Get(name string) (string, error) {
	name, err := validName(name)
	if err != nil {
		return "", err
	}
	value, err := s.backend.Get(s.namespace, name)
	if err != nil {
		var nf *backend.ErrNotFound
		if errors.As(err, &nf) {
			_ = s.index.Remove(name)
		}
		return "", err
	}
	return value, nil
}

// Delete removes a secret from the backend and the index. The index entry
// is removed even when the backend reports not-found, healing ghost
// entries; the not-found error is still returned so callers can tell
// "nothing to delete" from "deleted". Other backend failures leave the
// index untouched.
func (s *Store) Delete(name string) error {
	name, err := validName(name)
	if err != nil {
		return err
	}
	if err := s.backend.Delete(s.namespace, name); err != nil {
		var nf *backend.ErrNotFound
		if errors.As(err, &nf) {
			_ = s.index.Remove(name)
		}
		return err
	}
	if err := s.index.Remove(name); err != nil {
		return &IndexWarning{Name: name, Err: err}
	}
	return nil
}

// Names returns the indexed secret names in sorted order. This never
// touches the backend: listing stays cheap, at the documented cost of
// possibly including names deleted out-of-band until the next
// Get/Delete/ExportEnv observes them.
func (s *Store) Names() ([]string, error) {
	return s.index.Names()
}

// ExportEnv reads every indexed secret from the backend and returns a
// name-to-value map. Names the backend no longer has are skipped and
// dropped from the index; this call has already proven their absence.
// Any other backend failure aborts the whole export: handing scripts a
// partial environment during a keystore outage is worse than failing.
func (s *Store) ExportEnv() (map[string]string, error) {
	names, err := s.index.Names()
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(names))
	for _, name := range names {
		value, err := s.backend.Get(s.namespace, name)
		if err != nil {
			var nf *backend.ErrNotFound
			if errors.As(err, &nf) {
				_ = s.index.Remove(name)
				continue
			}
			return nil, fmt.Errorf("export %q: %w", name, err)
		}
		result[name] = value
	}
	return result, nil
}

// Status reports namespace, backend name, index path and index-derived
// secret count. Cheap by design: no backend round-trips.
func (s *Store) Status() (Status, error) {
	count, err := s.index.Count()
	if err != nil {
		return Status{}, err
	}
	return Status{
		Namespace:   s.namespace,
		Backend:     s.backend.Name(),
		SecretCount: count,
		IndexPath:   s.index.Path(),
	}, nil
}
