package checkpoint

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// FileStore persists marked fingerprints as a write-ahead log of
// newline-delimited JSON records, periodically compacted into a single
// checkpoint.json snapshot via write-temp-then-rename. Built on
// afero.Fs so tests run entirely against an in-memory filesystem — the
// teacher's checkpoint manager used os directly; this domain's
// WAL-plus-compaction shape needs the extra seam for deterministic
// concurrent-write tests.
type FileStore struct {
	fs  afero.Fs
	dir string

	mu      sync.Mutex
	marked  map[string]struct{}
	wal     afero.File
	walPath string

	compactionInterval time.Duration
	stopCompaction      chan struct{}
	compactionDone      chan struct{}
}

type walRecord struct {
	Fingerprint string    `json:"fingerprint"`
	MarkedAt    time.Time `json:"marked_at"`
}

type snapshot struct {
	Fingerprints []string  `json:"fingerprints"`
	SavedAt      time.Time `json:"saved_at"`
}

// NewFileStore opens (or creates) the checkpoint directory dir on fs and
// replays any existing snapshot plus WAL tail to reconstruct the marked
// set. compactionInterval <= 0 disables the background compaction loop
// (callers must call Compact explicitly, e.g. in tests).
func NewFileStore(fs afero.Fs, dir string, compactionInterval time.Duration) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint dir: %w", err)
	}

	s := &FileStore{
		fs:                 fs,
		dir:                dir,
		marked:             make(map[string]struct{}),
		walPath:            filepath.Join(dir, "wal.jsonl"),
		compactionInterval: compactionInterval,
	}

	if err := s.replay(); err != nil {
		return nil, err
	}

	wal, err := fs.OpenFile(s.walPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open wal: %w", err)
	}
	s.wal = wal

	if compactionInterval > 0 {
		s.stopCompaction = make(chan struct{})
		s.compactionDone = make(chan struct{})
		go s.compactionLoop()
	}

	return s, nil
}

// snapshotPath returns the path of the compacted snapshot file.
func (s *FileStore) snapshotPath() string {
	return filepath.Join(s.dir, "checkpoint.json")
}

// replay reconstructs s.marked from the snapshot (if any) plus any WAL
// records appended after it was written.
func (s *FileStore) replay() error {
	if f, err := s.fs.Open(s.snapshotPath()); err == nil {
		defer f.Close()
		var snap snapshot
		if err := json.NewDecoder(f).Decode(&snap); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		for _, fp := range snap.Fingerprints {
			s.marked[fp] = struct{}{}
		}
	} else if !isNotExist(err) {
		return fmt.Errorf("open snapshot: %w", err)
	}

	f, err := s.fs.Open(s.walPath)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return fmt.Errorf("open wal: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec walRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue // a torn final WAL line from a crash is tolerated, not fatal
		}
		s.marked[rec.Fingerprint] = struct{}{}
	}
	return nil
}

// Load returns a copy of the marked set.
func (s *FileStore) Load(ctx context.Context) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{}, len(s.marked))
	for fp := range s.marked {
		out[fp] = struct{}{}
	}
	return out, nil
}

// Mark appends fingerprint to the WAL and updates the in-memory set.
func (s *FileStore) Mark(ctx context.Context, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.marked[fingerprint]; exists {
		return nil
	}

	rec := walRecord{Fingerprint: fingerprint, MarkedAt: time.Now()}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal wal record: %w", err)
	}
	line = append(line, '\n')
	if _, err := s.wal.Write(line); err != nil {
		return fmt.Errorf("append wal: %w", err)
	}
	if err := s.wal.Sync(); err != nil {
		return fmt.Errorf("sync wal: %w", err)
	}

	s.marked[fingerprint] = struct{}{}
	return nil
}

// Compact writes a fresh snapshot of the current marked set via
// write-temp-then-rename, then truncates the WAL. Safe to call
// concurrently with Mark.
func (s *FileStore) Compact() error {
	s.mu.Lock()
	fingerprints := make([]string, 0, len(s.marked))
	for fp := range s.marked {
		fingerprints = append(fingerprints, fp)
	}
	s.mu.Unlock()

	snap := snapshot{Fingerprints: fingerprints, SavedAt: time.Now()}
	tmpPath := filepath.Join(s.dir, "checkpoint.tmp")

	f, err := s.fs.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := s.fs.Rename(tmpPath, s.snapshotPath()); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.wal.Truncate(0); err != nil {
		return fmt.Errorf("truncate wal: %w", err)
	}
	if _, err := s.wal.Seek(0, 0); err != nil {
		return fmt.Errorf("seek wal: %w", err)
	}
	return nil
}

func (s *FileStore) compactionLoop() {
	defer close(s.compactionDone)
	ticker := time.NewTicker(s.compactionInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = s.Compact()
		case <-s.stopCompaction:
			return
		}
	}
}

// Clear removes the snapshot and WAL and resets the in-memory set.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.marked = make(map[string]struct{})
	if err := s.wal.Truncate(0); err != nil {
		return fmt.Errorf("truncate wal: %w", err)
	}
	if _, err := s.wal.Seek(0, 0); err != nil {
		return fmt.Errorf("seek wal: %w", err)
	}
	if err := s.fs.Remove(s.snapshotPath()); err != nil && !isNotExist(err) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

// Close stops the compaction loop (if running), performs a final
// compaction, and closes the WAL file.
func (s *FileStore) Close() error {
	if s.stopCompaction != nil {
		close(s.stopCompaction)
		<-s.compactionDone
	}
	_ = s.Compact()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wal.Close()
}

func isNotExist(err error) bool {
	return err != nil && (afero.IsNotExist(err))
}
