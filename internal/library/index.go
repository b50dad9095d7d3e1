package library

import (
	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/taxon"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/util"
)

// Index is the in-memory view of one corpus snapshot. Buckets preserve load
// order so score ties resolve to the first-seen record.
type Index struct {
	Records      []*internal.PlantRecord
	ByKey        map[string][]*internal.PlantRecord
	ByFile       map[string]*internal.PlantRecord
	KeyByFile    map[string]string
	TokenToFiles map[string]map[string]struct{}
}

// KeyFor computes the grouping identity for a record: the canonical key of
// its scientific name, falling back to the folded display name.
func KeyFor(record *internal.PlantRecord) string {
	if key := taxon.Normalize(record.ScientificName); key != "" {
		return key
	}
	return util.Fold(record.Name)
}

func BuildIndex(records []*internal.PlantRecord) *Index {
	idx := &Index{
		Records:      records,
		ByKey:        map[string][]*internal.PlantRecord{},
		ByFile:       map[string]*internal.PlantRecord{},
		KeyByFile:    map[string]string{},
		TokenToFiles: map[string]map[string]struct{}{},
	}

	for _, record := range records {
		key := KeyFor(record)
		idx.ByKey[key] = append(idx.ByKey[key], record)
		idx.ByFile[record.FileName] = record
		idx.KeyByFile[record.FileName] = key

		for _, token := range append(util.Tokenize(record.Name), util.Tokenize(record.ScientificName)...) {
			if _, ok := idx.TokenToFiles[token]; !ok {
				idx.TokenToFiles[token] = map[string]struct{}{}
			}
			idx.TokenToFiles[token][record.FileName] = struct{}{}
		}
	}

	return idx
}
