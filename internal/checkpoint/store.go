// Package checkpoint implements the fingerprint-keyed resume store: an
// atomic write-temp-then-rename JSON log keyed by Query.Fingerprint, so
// a run marks thousands of individually-completed queries over hours
// and a later run can skip all of them on resume.
package checkpoint

import "context"

// Store is the interface the executor marks completed queries through.
type Store interface {
	// Load returns the set of fingerprints already marked complete, for
	// skip-on-resume filtering before any provider call is made.
	Load(ctx context.Context) (map[string]struct{}, error)
	// Mark records fingerprint as complete. Must be safe to call
	// concurrently from many executor goroutines.
	Mark(ctx context.Context, fingerprint string) error
	// Clear removes all recorded state — used by a fresh (non-resumed)
	// CLI run, before it starts and again after it finishes.
	Clear(ctx context.Context) error
	// Close releases any held resources (file handles, DB connections).
	Close() error
}
