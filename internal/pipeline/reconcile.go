package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/library"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/taxon"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/vocab"
)

// Reconciler runs the full canonicalization pipeline over one corpus
// snapshot: load, filter, group, merge, classify, stage, commit, manifest.
type Reconciler struct {
	store *library.Store
	vocab vocab.Vocabulary
}

func NewReconciler(store *library.Store, v vocab.Vocabulary) *Reconciler {
	return &Reconciler{store: store, vocab: v}
}

type Options struct {
	// DryRun computes and reports every decision but discards the staging
	// directory instead of committing.
	DryRun bool
	// KeepStaging leaves the staging directory on disk after a dry run so
	// the would-be writes can be inspected.
	KeepStaging bool
}

// Run executes the pipeline. Per-record write failures are counted in the
// summary; only a manifest write failure aborts with an error, because a
// stale manifest corrupts every later run.
func (r *Reconciler) Run(opts Options) (internal.RunSummary, error) {
	summary := internal.RunSummary{NullAttributes: map[string]int{}}

	records, malformed, err := r.store.LoadAll()
	if err != nil {
		return summary, err
	}
	summary.Loaded = len(records)
	summary.Malformed = malformed

	plants, nonPlants := FilterNonPlants(records, r.vocab)
	summary.NonPlants = len(nonPlants)

	grouped := GroupRecords(plants)
	summary.Merged = grouped.Merged
	summary.Variants = grouped.Variants
	summary.Survivors = len(grouped.Kept)

	for _, group := range grouped.Groups {
		for _, loser := range group.Losers {
			Merge(group.Survivor, loser, r.vocab)
		}
	}

	enforceUniqueIDs(grouped.Kept)

	classifier := NewClassifier(r.vocab)
	for _, record := range grouped.Kept {
		classifier.Classify(record)
		if formatted := taxon.FormatScientificName(record.ScientificName); formatted != "" {
			record.ScientificName = formatted
		}
		countNulls(record, summary.NullAttributes)
	}

	staging, err := r.store.BeginStaging()
	if err != nil {
		return summary, err
	}

	for _, record := range grouped.Kept {
		if err := staging.Put(record); err != nil {
			slog.Error("failed to stage record", "file", record.FileName, "error", err)
			summary.Errored++
		}
	}
	for _, group := range grouped.Groups {
		for _, loser := range group.Losers {
			staging.Delete(loser.FileName)
		}
	}
	for _, record := range nonPlants {
		staging.Delete(record.FileName)
	}

	if opts.DryRun {
		if opts.KeepStaging {
			slog.Info("dry run complete, staging kept", "dir", staging.Dir())
			return summary, nil
		}
		if err := staging.Discard(); err != nil {
			return summary, fmt.Errorf("discard staging: %w", err)
		}
		return summary, nil
	}

	commit := staging.Commit()
	summary.Updated = commit.Updated
	summary.Deleted = commit.Deleted
	summary.Errored += commit.Errored

	if _, err := r.store.WriteManifest(); err != nil {
		return summary, fmt.Errorf("index manifest: %w", err)
	}
	return summary, nil
}

// RunClassify re-runs only the attribute classifier over the corpus. With
// force, existing enumerated values are cleared and re-derived.
func (r *Reconciler) RunClassify(force bool) (internal.RunSummary, error) {
	summary := internal.RunSummary{NullAttributes: map[string]int{}}

	records, malformed, err := r.store.LoadAll()
	if err != nil {
		return summary, err
	}
	summary.Loaded = len(records)
	summary.Malformed = malformed

	classifier := NewClassifier(r.vocab)
	staging, err := r.store.BeginStaging()
	if err != nil {
		return summary, err
	}

	for _, record := range records {
		if force {
			clearAttributes(record)
		}
		classifier.Classify(record)
		countNulls(record, summary.NullAttributes)
		if err := staging.Put(record); err != nil {
			slog.Error("failed to stage record", "file", record.FileName, "error", err)
			summary.Errored++
		}
	}

	commit := staging.Commit()
	summary.Updated = commit.Updated
	summary.Errored += commit.Errored

	if _, err := r.store.WriteManifest(); err != nil {
		return summary, fmt.Errorf("index manifest: %w", err)
	}
	return summary, nil
}

// enforceUniqueIDs clears the id of any record that repeats one already
// claimed by an earlier-loaded record. Ids are assigned once elsewhere; the
// pipeline only guards the uniqueness invariant.
func enforceUniqueIDs(records []*internal.PlantRecord) {
	seen := map[int]string{}
	for _, record := range records {
		if record.ID == nil {
			continue
		}
		if holder, taken := seen[*record.ID]; taken {
			slog.Warn("duplicate record id cleared", "id", *record.ID, "file", record.FileName, "heldBy", holder)
			record.ID = nil
			continue
		}
		seen[*record.ID] = record.FileName
	}
}

func clearAttributes(record *internal.PlantRecord) {
	record.PlantType = nil
	record.GrowthPattern = nil
	record.GrowthHabit = nil
	record.Hazard = nil
	record.Rarity = nil
	record.Propagation = nil
	record.FloweringPeriod = nil
	record.CO2 = nil
}

func countNulls(record *internal.PlantRecord, counts map[string]int) {
	fields := map[string]*string{
		vocab.FieldPlantType:       record.PlantType,
		vocab.FieldGrowthPattern:   record.GrowthPattern,
		vocab.FieldGrowthHabit:     record.GrowthHabit,
		vocab.FieldHazard:          record.Hazard,
		vocab.FieldRarity:          record.Rarity,
		vocab.FieldFloweringPeriod: record.FloweringPeriod,
		vocab.FieldCO2:             record.CO2,
	}
	for name, value := range fields {
		if value == nil {
			counts[name]++
		}
	}
}
