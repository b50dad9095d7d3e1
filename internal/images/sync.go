// Package images keeps record image lists in step with the image folders on
// disk. The folder layout is one directory per plant, named by the record's
// slug; the folders themselves are owned by humans and never mutated here.
package images

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/library"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/util"
)

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}, ".gif": {},
}

// FolderSlugFor maps a record to its image directory name.
func FolderSlugFor(record *internal.PlantRecord) string {
	source := record.ScientificName
	if strings.TrimSpace(source) == "" {
		source = record.Name
	}
	return util.Slug(source)
}

// ListImageFiles returns the image paths for one slug, sorted by filename,
// each relative to the images root ("<slug>/<file>"). A missing folder is
// an empty list, not an error.
func ListImageFiles(imagesDir, slug string) ([]string, error) {
	if slug == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(path.Join(imagesDir, slug))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if _, ok := imageExtensions[ext]; !ok {
			continue
		}
		out = append(out, path.Join(slug, name))
	}
	sort.Strings(out)
	return out, nil
}

type Syncer struct {
	store     *library.Store
	imagesDir string
}

func NewSyncer(store *library.Store, imagesDir string) *Syncer {
	return &Syncer{store: store, imagesDir: imagesDir}
}

type SyncResult struct {
	Scanned  int
	Updated  int
	NoFolder int
	NoImages int
	Errored  int
}

// Run replaces each record's image list with what the folder actually
// holds. The record's current primary image keeps its slot when it still
// exists; everything else follows in filename order.
func (s *Syncer) Run() (SyncResult, error) {
	var result SyncResult

	records, _, err := s.store.LoadAll()
	if err != nil {
		return result, err
	}

	staging, err := s.store.BeginStaging()
	if err != nil {
		return result, err
	}

	for _, record := range records {
		result.Scanned++

		slug := FolderSlugFor(record)
		files, err := ListImageFiles(s.imagesDir, slug)
		if err != nil {
			slog.Warn("failed to list image folder", "slug", slug, "error", err)
			result.Errored++
			continue
		}
		if files == nil {
			result.NoFolder++
			continue
		}
		if len(files) == 0 {
			result.NoImages++
		}

		updated := orderWithPrimary(record.Images, files)
		if equalPaths(record.Images, updated) {
			continue
		}
		record.Images = updated
		if err := staging.Put(record); err != nil {
			slog.Error("failed to stage record", "file", record.FileName, "error", err)
			result.Errored++
			continue
		}
		result.Updated++
	}

	staging.Commit()
	if _, err := s.store.WriteManifest(); err != nil {
		return result, fmt.Errorf("index manifest: %w", err)
	}
	return result, nil
}

func orderWithPrimary(current, found []string) []string {
	if len(current) == 0 || len(found) == 0 {
		return found
	}
	primary := current[0]
	for i, file := range found {
		if file == primary && i != 0 {
			reordered := make([]string, 0, len(found))
			reordered = append(reordered, primary)
			reordered = append(reordered, found[:i]...)
			reordered = append(reordered, found[i+1:]...)
			return reordered
		}
	}
	return found
}

func equalPaths(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
