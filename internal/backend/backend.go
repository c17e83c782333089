// Package backend defines the interface for OS-native secret storage.
// The actual secret values live in the platform credential store;
// the set of known names is tracked separately by the index package.
package backend

// Backend stores and retrieves secret values keyed by (service, name).
// The service string isolates namespaces from each other inside the
// platform store; two services never see each other's entries.
type Backend interface {
	// Name identifies the adapter ("secret-service", "wincred", ...)
	// for status output and logging.
	Name() string

	// Get returns the stored value for (service, name).
	// Returns an error wrapping *ErrNotFound if no entry exists.
	Get(service, name string) (string, error)

	// Set stores value under (service, name).
	// Creates the entry if it does not exist; replaces it if it does.
	Set(service, name, value string) error

	// Delete removes the entry for (service, name).
	// Returns an error wrapping *ErrNotFound if no entry exists.
	Delete(service, name string) error
}

// ErrNotFound is returned when a requested secret does not exist in the
// platform store. Any other error from a Backend is a platform failure
// (locked keystore, permission denied, daemon unreachable) and carries
// the underlying detail.
type ErrNotFound struct {
	Service string
	Name    string
}

func (e *ErrNotFound) Error() string {
	return "secret not found: " + e.Service + "/" + e.Name
}
