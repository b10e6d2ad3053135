package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

const fileSinkFlags = os.O_APPEND | os.O_CREATE | os.O_WRONLY

// FileSink appends each QueryResult as a newline-delimited JSON record
// to a single output file, afero.Fs-backed for the same testability
// reason as checkpoint.FileStore.
type FileSink struct {
	fs   afero.Fs
	path string

	mu   sync.Mutex
	file afero.File
}

func NewFileSink(fs afero.Fs, path string) (*FileSink, error) {
	f, err := fs.OpenFile(path, fileSinkFlags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open sink file: %w", err)
	}
	return &FileSink{fs: fs, path: path, file: f}, nil
}

func (s *FileSink) Write(ctx context.Context, result types.QueryResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	line = append(line, '\n')
	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// MemoryCollector accumulates results in memory for small runs or
// tests, implementing Collector.
type MemoryCollector struct {
	mu      sync.Mutex
	results []types.QueryResult
}

func NewMemoryCollector() *MemoryCollector { return &MemoryCollector{} }

func (c *MemoryCollector) Collect(result types.QueryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

func (c *MemoryCollector) Results() []types.QueryResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.QueryResult(nil), c.results...)
}
