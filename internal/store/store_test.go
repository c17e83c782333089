// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/akihiro/secrets-cli/internal/backend"
	"github.com/akihiro/secrets-cli/internal/backend/memory"
	"github.com/akihiro/secrets-cli/internal/index"
)

func newTestStore(t *testing.T) (*Store, *memory.Backend) {
	t.Helper()
	be := memory.New()
	s, err := New("test-ns", t.TempDir(), be)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, be
}

func TestSetGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set("API_KEY", "hunter2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := s.Get("API_KEY")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "hunter2" {
		t.Errorf("value = %q, want %q", v, "hunter2")
	}
}

func TestOverwriteLastWriteWins(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set("K", "v1"); err != nil {
		t.Fatalf("Set v1: %v", err)
	}
	if err := s.Set("K", "v2"); err != nil {
		t.Fatalf("Set v2: %v", err)
	}
	v, err := s.Get("K")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "v2" {
		t.Errorf("value = %q, want %q", v, "v2")
	}
	names, _ := s.Names()
	if len(names) != 1 {
		t.Errorf("names = %v, want one entry", names)
	}
}

func TestDeleteThenGetNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set("K", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete("K"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := s.Get("K")
	var nf *backend.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("Get after delete = %v, want *backend.ErrNotFound", err)
	}
	names, _ := s.Names()
	if len(names) != 0 {
		t.Errorf("names after delete = %v, want empty", names)
	}
}

func TestDeleteNeverSetReturnsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.Delete("NEVER_SET")
	var nf *backend.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("Delete = %v, want *backend.ErrNotFound", err)
	}
}

func TestListContainsExactlySetNames(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set("B", "2"); err != nil {
		t.Fatalf("Set B: %v", err)
	}
	if err := s.Set("A", "1"); err != nil {
		t.Fatalf("Set A: %v", err)
	}
	names, err := s.Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"A", "B"}) {
		t.Errorf("names = %v, want [A B]", names)
	}
}

func TestSetRejectsEmptyNameAndValue(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set("  ", "v"); err == nil {
		t.Error("Set with blank name succeeded, want error")
	}
	if err := s.Set("K", ""); err == nil {
		t.Error("Set with empty value succeeded, want error")
	}
	names, _ := s.Names()
	if len(names) != 0 {
		t.Errorf("names = %v, want empty after rejected sets", names)
	}
}

func TestSetTrimsName(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set("  TOKEN  ", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := s.Get("TOKEN"); err != nil {
		t.Errorf("Get trimmed name: %v", err)
	}
}

func TestOutOfBandDeletionSelfHealsOnGet(t *testing.T) {
	s, be := newTestStore(t)
	if err := s.Set("GHOST", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Erase from the backend only, as another process or a direct keyring
	// call would. The index still lists the name.
	if err := be.Delete("test-ns", "GHOST"); err != nil {
		t.Fatalf("backend delete: %v", err)
	}

	_, err := s.Get("GHOST")
	var nf *backend.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("Get = %v, want *backend.ErrNotFound", err)
	}

	names, _ := s.Names()
	if len(names) != 0 {
		t.Errorf("names after self-heal = %v, want empty", names)
	}
}

func TestExportEnvSkipsGhostsAndHealsIndex(t *testing.T) {
	s, be := newTestStore(t)
	for name, v := range map[string]string{"LIVE_A": "1", "LIVE_B": "2", "GHOST": "3"} {
		if err := s.Set(name, v); err != nil {
			t.Fatalf("Set %s: %v", name, err)
		}
	}
	if err := be.Delete("test-ns", "GHOST"); err != nil {
		t.Fatalf("backend delete: %v", err)
	}

	exports, err := s.ExportEnv()
	if err != nil {
		t.Fatalf("ExportEnv: %v", err)
	}
	want := map[string]string{"LIVE_A": "1", "LIVE_B": "2"}
	if !reflect.DeepEqual(exports, want) {
		t.Errorf("exports = %v, want %v", exports, want)
	}

	names, _ := s.Names()
	if !reflect.DeepEqual(names, []string{"LIVE_A", "LIVE_B"}) {
		t.Errorf("names after export = %v, want [LIVE_A LIVE_B]", names)
	}
}

// failingBackend returns a non-not-found error from Get, simulating a
// locked or unreachable keystore.
type failingBackend struct {
	*memory.Backend
	failGet map[string]bool
}

func (f *failingBackend) Get(service, name string) (string, error) {
	if f.failGet[name] {
		return "", errors.New("keystore is locked")
	}
	return f.Backend.Get(service, name)
}

func TestExportEnvAbortsOnBackendError(t *testing.T) {
	be := &failingBackend{Backend: memory.New(), failGet: map[string]bool{}}
	s, err := New("test-ns", t.TempDir(), be)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Set("OK", "1"); err != nil {
		t.Fatalf("Set OK: %v", err)
	}
	if err := s.Set("BROKEN", "2"); err != nil {
		t.Fatalf("Set BROKEN: %v", err)
	}
	be.failGet["BROKEN"] = true

	if _, err := s.ExportEnv(); err == nil {
		t.Fatal("ExportEnv succeeded despite backend failure, want error")
	}
}

func TestCorruptIndexSurfaces(t *testing.T) {
	dir := t.TempDir()
	s, err := New("test-ns", dir, memory.New())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := os.WriteFile(s.IndexPath(), []byte("][garbage"), 0o600); err != nil {
		t.Fatalf("write corrupt index: %v", err)
	}

	_, err = s.Names()
	var corrupt *index.ErrCorrupt
	if !errors.As(err, &corrupt) {
		t.Fatalf("Names = %v, want *index.ErrCorrupt", err)
	}
}

func TestSetBackendFailureLeavesIndexUntouched(t *testing.T) {
	be := &rejectingBackend{}
	s, err := New("test-ns", t.TempDir(), be)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Set("K", "v"); err == nil {
		t.Fatal("Set succeeded despite backend failure, want error")
	}
	names, _ := s.Names()
	if len(names) != 0 {
		t.Errorf("names = %v, want empty (no phantom entries)", names)
	}
}

// rejectingBackend fails every write.
type rejectingBackend struct{}

func (r *rejectingBackend) Name() string { return "rejecting" }
func (r *rejectingBackend) Get(service, name string) (string, error) {
	return "", &backend.ErrNotFound{Service: service, Name: name}
}
func (r *rejectingBackend) Set(service, name, value string) error {
	return errors.New("permission denied")
}
func (r *rejectingBackend) Delete(service, name string) error {
	return errors.New("permission denied")
}

func TestSetIndexFailureReturnsWarning(t *testing.T) {
	// A regular file where the base directory should be makes the index
	// write fail while the backend write succeeds.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "occupied")
	if err := os.WriteFile(blocked, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	be := memory.New()
	s, err := New("test-ns", blocked, be)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = s.Set("K", "v")
	var warn *IndexWarning
	if !errors.As(err, &warn) {
		t.Fatalf("Set = %v, want *IndexWarning", err)
	}
	// The value must be durably stored despite the warning.
	if v, err := be.Get("test-ns", "K"); err != nil || v != "v" {
		t.Errorf("backend value = %q, %v; want %q stored", v, err, "v")
	}
}

func TestNamespaceIsolation(t *testing.T) {
	dir := t.TempDir()
	be := memory.New()
	s1, err := New("ns-one", dir, be)
	if err != nil {
		t.Fatalf("New ns-one: %v", err)
	}
	s2, err := New("ns-two", dir, be)
	if err != nil {
		t.Fatalf("New ns-two: %v", err)
	}

	if err := s1.Set("SHARED_NAME", "one"); err != nil {
		t.Fatalf("Set in ns-one: %v", err)
	}
	if err := s2.Set("OTHER", "two"); err != nil {
		t.Fatalf("Set in ns-two: %v", err)
	}

	if _, err := s2.Get("SHARED_NAME"); err == nil {
		t.Error("ns-two sees ns-one's secret")
	}
	names1, _ := s1.Names()
	names2, _ := s2.Names()
	if !reflect.DeepEqual(names1, []string{"SHARED_NAME"}) {
		t.Errorf("ns-one names = %v, want [SHARED_NAME]", names1)
	}
	if !reflect.DeepEqual(names2, []string{"OTHER"}) {
		t.Errorf("ns-two names = %v, want [OTHER]", names2)
	}
}

func TestStatus(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set("A", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	st, err := s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Namespace != "test-ns" {
		t.Errorf("namespace = %q, want test-ns", st.Namespace)
	}
	if st.Backend != "memory" {
		t.Errorf("backend = %q, want memory", st.Backend)
	}
	if st.SecretCount != 1 {
		t.Errorf("secret count = %d, want 1", st.SecretCount)
	}
	if st.IndexPath != s.IndexPath() {
		t.Errorf("index path = %q, want %q", st.IndexPath, s.IndexPath())
	}
}

func TestNewRejectsEmptyNamespace(t *testing.T) {
	if _, err := New("   ", t.TempDir(), memory.New()); err == nil {
		t.Error("New with blank namespace succeeded, want error")
	}
}
