// Package library owns the on-disk plant corpus: one JSON document per
// record plus an index manifest. All mutations go through a staging
// directory and are committed with renames only after every decision for the
// run has been made, so an interrupted run never leaves a half-updated
// corpus.
package library

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/util"
)

const ManifestName = "index.json"

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string { return s.dir }

// LockPath is the flock target for mutating runs.
func (s *Store) LockPath() string {
	return filepath.Join(s.dir, ".reconcile.lock")
}

// LoadAll reads every plant document in deterministic (filename) order.
// Malformed documents and documents without a name are skipped with a
// warning and counted; they never abort the run.
func (s *Store) LoadAll() ([]*internal.PlantRecord, int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, 0, fmt.Errorf("read plants dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") || name == ManifestName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]*internal.PlantRecord, 0, len(names))
	malformed := 0
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		blob, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable record", "file", name, "error", err)
			malformed++
			continue
		}
		var record internal.PlantRecord
		if err := json.Unmarshal(blob, &record); err != nil {
			slog.Warn("skipping malformed record", "file", name, "error", err)
			malformed++
			continue
		}
		if strings.TrimSpace(record.Name) == "" {
			slog.Warn("skipping record without name", "file", name)
			malformed++
			continue
		}
		record.FileName = name
		records = append(records, &record)
	}

	return records, malformed, nil
}

// FileNameFor derives the backing filename for a record that does not have
// one yet.
func FileNameFor(record *internal.PlantRecord) string {
	source := record.ScientificName
	if strings.TrimSpace(source) == "" {
		source = record.Name
	}
	slug := util.Slug(source)
	if slug == "" {
		slug = "unnamed"
	}
	return slug + ".json"
}

// Staging collects a run's writes and deletes. Nothing touches the live
// corpus until Commit.
type Staging struct {
	store   *Store
	dir     string
	staged  []string
	deletes []string
}

func (st *Staging) Dir() string { return st.dir }

func (s *Store) BeginStaging() (*Staging, error) {
	dir := filepath.Join(s.dir, ".staging-"+runID())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Staging{store: s, dir: dir}, nil
}

// Put stages the record's document. A failed stage write affects only this
// record; the caller counts it and carries on.
func (st *Staging) Put(record *internal.PlantRecord) error {
	if record.FileName == "" {
		record.FileName = FileNameFor(record)
	}
	blob, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	blob = append(blob, '\n')
	if err := os.WriteFile(filepath.Join(st.dir, record.FileName), blob, 0o644); err != nil {
		return err
	}
	st.staged = append(st.staged, record.FileName)
	return nil
}

// Delete marks a merged loser's backing file for removal at commit time.
func (st *Staging) Delete(fileName string) {
	if fileName != "" {
		st.deletes = append(st.deletes, fileName)
	}
}

type CommitResult struct {
	Updated int
	Deleted int
	Errored int
}

// Commit renames staged documents into place, then removes loser files,
// then drops the staging directory. Individual rename/remove failures are
// logged and counted but do not stop the commit.
func (st *Staging) Commit() CommitResult {
	var result CommitResult

	for _, name := range st.staged {
		src := filepath.Join(st.dir, name)
		dst := filepath.Join(st.store.dir, name)
		if err := os.Rename(src, dst); err != nil {
			slog.Error("failed to commit record", "file", name, "error", err)
			result.Errored++
			continue
		}
		result.Updated++
	}

	for _, name := range st.deletes {
		if err := os.Remove(filepath.Join(st.store.dir, name)); err != nil && !os.IsNotExist(err) {
			slog.Error("failed to remove merged record", "file", name, "error", err)
			result.Errored++
			continue
		}
		result.Deleted++
	}

	if err := os.RemoveAll(st.dir); err != nil {
		slog.Warn("failed to remove staging dir", "dir", st.dir, "error", err)
	}
	return result
}

// Discard drops all staged writes, leaving the corpus untouched.
func (st *Staging) Discard() error {
	return os.RemoveAll(st.dir)
}

type Manifest struct {
	Count       int      `json:"count"`
	GeneratedAt string   `json:"generatedAt"`
	Plants      []string `json:"plants"`
}

// WriteManifest regenerates index.json from the files actually on disk. A
// manifest that drifts from the directory is worse than no run at all, so
// callers treat an error here as fatal.
func (s *Store) WriteManifest() (Manifest, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return Manifest{}, fmt.Errorf("read plants dir: %w", err)
	}

	plants := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".json") && name != ManifestName {
			plants = append(plants, name)
		}
	}
	sort.Strings(plants)

	manifest := Manifest{
		Count:       len(plants),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Plants:      plants,
	}
	blob, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return Manifest{}, err
	}
	blob = append(blob, '\n')

	tmp := filepath.Join(s.dir, ManifestName+".tmp")
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return Manifest{}, fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, ManifestName)); err != nil {
		return Manifest{}, fmt.Errorf("commit manifest: %w", err)
	}
	return manifest, nil
}

func runID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
