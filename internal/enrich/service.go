package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/config"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/library"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/storage"
)

// Sources in fetch order. Descriptions come from the first source that has
// one; taxonomy only GBIF provides.
var Sources = []string{"wikipedia", "gbif", "araflora", "growtropicals"}

type Service struct {
	db     *storage.DB
	client *Client
	store  *library.Store
}

func NewService(db *storage.DB, store *library.Store, cfg config.Config) *Service {
	return &Service{db: db, client: NewClient(cfg), store: store}
}

type EnrichResult struct {
	Considered int
	Enriched   int
	FromCache  int
	Failed     int
}

// Run enriches up to limit records that still miss a description or
// taxonomy. Responses (including negative ones) are cached per
// (source, canonical key), so re-runs only hit the network for new taxa.
// Source failures are logged and skipped; the run always completes.
func (s *Service) Run(ctx context.Context, limit int, onlySource string) (EnrichResult, error) {
	var result EnrichResult

	records, _, err := s.store.LoadAll()
	if err != nil {
		return result, err
	}

	staging, err := s.store.BeginStaging()
	if err != nil {
		return result, err
	}

	for _, record := range records {
		if limit > 0 && result.Considered >= limit {
			break
		}
		if strings.TrimSpace(record.ScientificName) == "" {
			continue
		}
		if record.Description != "" && record.Taxonomy.PopulatedRanks() >= 3 {
			continue
		}
		result.Considered++

		changed := false
		for _, source := range Sources {
			if onlySource != "" && source != onlySource {
				continue
			}
			res, fromCache, err := s.lookup(ctx, source, record)
			if err != nil {
				slog.Warn("enrichment source failed", "source", source, "name", record.ScientificName, "error", err)
				result.Failed++
				continue
			}
			if fromCache {
				result.FromCache++
			}
			if apply(record, res) {
				changed = true
			}
		}

		if changed {
			result.Enriched++
			if err := staging.Put(record); err != nil {
				slog.Error("failed to stage enriched record", "file", record.FileName, "error", err)
				result.Failed++
			}
		}
	}

	staging.Commit()
	if _, err := s.store.WriteManifest(); err != nil {
		return result, fmt.Errorf("index manifest: %w", err)
	}
	return result, nil
}

// lookup consults the cache before the network. A source that knows nothing
// is cached as "null" so it is not asked again.
func (s *Service) lookup(ctx context.Context, source string, record *internal.PlantRecord) (*Result, bool, error) {
	key := library.KeyFor(record)

	cached, err := s.db.GetCachedEnrichment(source, key)
	if err != nil {
		return nil, false, err
	}
	if cached != nil {
		var res *Result
		if err := json.Unmarshal([]byte(*cached), &res); err != nil {
			return nil, false, err
		}
		return res, true, nil
	}

	var res *Result
	switch source {
	case "wikipedia":
		res, err = s.client.WikipediaSummary(ctx, record.ScientificName)
	case "gbif":
		res, err = s.client.GBIFMatch(ctx, record.ScientificName)
	case "araflora":
		res, err = s.client.ArafloraDescription(ctx, record.ScientificName)
	case "growtropicals":
		res, err = s.client.GrowTropicalsDescription(ctx, record.ScientificName)
	default:
		return nil, false, fmt.Errorf("unknown enrichment source: %s", source)
	}
	if err != nil {
		return nil, false, err
	}

	payload, _ := json.Marshal(res)
	if err := s.db.PutCachedEnrichment(source, key, string(payload)); err != nil {
		return nil, false, err
	}
	return res, false, nil
}

// apply copies enrichment data onto the record without overwriting anything
// the corpus already knows: descriptions fill only empty ones, taxonomy
// fills only missing ranks.
func apply(record *internal.PlantRecord, res *Result) bool {
	if res == nil {
		return false
	}

	changed := false
	if res.Description != nil && strings.TrimSpace(record.Description) == "" {
		record.Description = *res.Description
		changed = true
	}

	if res.Taxonomy != nil {
		if record.Taxonomy == nil {
			record.Taxonomy = &internal.Taxonomy{}
		}
		changed = fillRank(&record.Taxonomy.Kingdom, res.Taxonomy.Kingdom) || changed
		changed = fillRank(&record.Taxonomy.Phylum, res.Taxonomy.Phylum) || changed
		changed = fillRank(&record.Taxonomy.Class, res.Taxonomy.Class) || changed
		changed = fillRank(&record.Taxonomy.Order, res.Taxonomy.Order) || changed
		changed = fillRank(&record.Taxonomy.Family, res.Taxonomy.Family) || changed
		changed = fillRank(&record.Taxonomy.Genus, res.Taxonomy.Genus) || changed
		changed = fillRank(&record.Taxonomy.Species, res.Taxonomy.Species) || changed
	}
	return changed
}

func fillRank(dst **string, src *string) bool {
	if src == nil || *src == "" {
		return false
	}
	if *dst != nil && strings.TrimSpace(**dst) != "" {
		return false
	}
	value := *src
	*dst = &value
	return true
}
