// Package adapter provides filesystem adapters for coverage records.
package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	m "github.com/mouse-blink/covfold/internal/model"
)

// CoverageStore reads and writes coverage map documents: JSON objects keyed
// by file path, one coverage record per file. Document key order is
// significant and preserved on both load and save.
type CoverageStore interface {
	LoadCoverageMap(path m.Path) ([]*m.FileCoverage, error)
	SaveCoverageMap(path m.Path, records []*m.FileCoverage) error
	FindShardFiles(reportsDir m.Path) ([]m.Path, error)
}

// LocalCoverageStore implements CoverageStore on the local filesystem.
type LocalCoverageStore struct{}

// NewCoverageStore creates a new LocalCoverageStore.
func NewCoverageStore() *LocalCoverageStore {
	return &LocalCoverageStore{}
}

// LoadCoverageMap reads one coverage map document and returns its records in
// document order. A record missing its own path field inherits the document
// key it was stored under.
func (s *LocalCoverageStore) LoadCoverageMap(path m.Path) ([]*m.FileCoverage, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage map %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	open, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode coverage map %s: %w", path, err)
	}

	if delim, ok := open.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("coverage map %s: expected JSON object, got %v", path, open)
	}

	var records []*m.FileCoverage

	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode coverage map %s: %w", path, err)
		}

		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("coverage map %s: expected string key, got %v", path, token)
		}

		record := &m.FileCoverage{}
		if err := dec.Decode(record); err != nil {
			return nil, fmt.Errorf("failed to decode record %q in %s: %w", key, path, err)
		}

		if record.Path == "" {
			record.Path = m.Path(key)
		}

		records = append(records, record)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode coverage map %s: %w", path, err)
	}

	slog.Debug("loaded coverage map", "path", path, "records", len(records))

	return records, nil
}

// SaveCoverageMap writes records as one coverage map document, keyed by each
// record's path, in the given order.
func (s *LocalCoverageStore) SaveCoverageMap(path m.Path, records []*m.FileCoverage) error {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, record := range records {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(string(record.Path))
		if err != nil {
			return fmt.Errorf("failed to encode path %s: %w", record.Path, err)
		}

		buf.Write(key)
		buf.WriteByte(':')

		encoded, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode record for %s: %w", record.Path, err)
		}

		buf.Write(encoded)
	}

	buf.WriteByte('}')

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(string(path), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write coverage map %s: %w", path, err)
	}

	slog.Debug("saved coverage map", "path", path, "records", len(records))

	return nil
}

// FindShardFiles lists the coverage map documents produced by parallel
// workers: every *.json below a shard_* subdirectory of reportsDir, sorted
// for deterministic merge order.
func (s *LocalCoverageStore) FindShardFiles(reportsDir m.Path) ([]m.Path, error) {
	matches, err := filepath.Glob(filepath.Join(string(reportsDir), "shard_*", "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for shard files: %w", reportsDir, err)
	}

	sort.Strings(matches)

	paths := make([]m.Path, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, m.Path(match))
	}

	return paths, nil
}
