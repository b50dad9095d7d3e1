package main

import (
	"fmt"
	"strings"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/config"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/library"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/storage"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/vocab"
)

func printReport(cfg config.Config, store *library.Store, runLimit int) error {
	records, malformed, err := store.LoadAll()
	if err != nil {
		return err
	}

	stats := collectStats(records)
	fmt.Println("corpus")
	fmt.Println(renderTable(
		[]string{"metric", "value"},
		[][]string{
			{"records", fmt.Sprintf("%d", len(records))},
			{"malformed files", fmt.Sprintf("%d", malformed)},
			{"variants", fmt.Sprintf("%d", stats.variants)},
			{"with scientific name", fmt.Sprintf("%d", stats.withSciName)},
			{"with description", fmt.Sprintf("%d", stats.withDescription)},
			{"with images", fmt.Sprintf("%d", stats.withImages)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	fmt.Println("\nattribute coverage")
	coverage := make([][]string, 0, len(vocab.EnumeratedFields)+1)
	for _, field := range vocab.EnumeratedFields {
		set := len(records) - stats.nulls[field]
		coverage = append(coverage, []string{field, fmt.Sprintf("%d / %d", set, len(records))})
	}
	coverage = append(coverage, []string{
		vocab.FieldPropagation,
		fmt.Sprintf("%d / %d", len(records)-stats.nulls[vocab.FieldPropagation], len(records)),
	})
	fmt.Println(renderTable(
		[]string{"attribute", "classified"},
		coverage,
		[]columnAlignment{alignLeft, alignRight},
	))

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("\nrun history unavailable: %v\n", err)
		return nil
	}
	defer db.Close()

	runs, err := db.ListRuns(runLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("\nno recorded runs")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.CreatedAt,
			run.Command,
			run.TraceID,
			formatCounts(run.Counts),
			fmt.Sprintf("%.0fms", run.Timings["totalMs"]),
		})
	}
	fmt.Println("\nrecent runs")
	fmt.Println(renderTable(
		[]string{"when", "command", "trace", "counts", "took"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	))
	return nil
}

type corpusStats struct {
	variants        int
	withSciName     int
	withDescription int
	withImages      int
	nulls           map[string]int
}

func collectStats(records []*internal.PlantRecord) corpusStats {
	stats := corpusStats{nulls: map[string]int{}}
	for _, record := range records {
		if record.VariantInfo != nil && record.VariantInfo.IsVariant {
			stats.variants++
		}
		if strings.TrimSpace(record.ScientificName) != "" {
			stats.withSciName++
		}
		if strings.TrimSpace(record.Description) != "" {
			stats.withDescription++
		}
		if len(record.Images) > 0 {
			stats.withImages++
		}
		for field, value := range map[string]*string{
			vocab.FieldPlantType:       record.PlantType,
			vocab.FieldGrowthPattern:   record.GrowthPattern,
			vocab.FieldGrowthHabit:     record.GrowthHabit,
			vocab.FieldHazard:          record.Hazard,
			vocab.FieldRarity:          record.Rarity,
			vocab.FieldFloweringPeriod: record.FloweringPeriod,
			vocab.FieldCO2:             record.CO2,
			vocab.FieldPropagation:     record.Propagation,
		} {
			if value == nil || strings.TrimSpace(*value) == "" {
				stats.nulls[field]++
			}
		}
	}
	return stats
}

func formatCounts(counts map[string]int) string {
	// Stable key order keeps run rows comparable between invocations.
	keys := []string{"loaded", "malformed", "nonPlants", "merged", "variants", "updated", "deleted", "errored", "considered", "enriched", "fromCache", "failed"}
	parts := make([]string, 0, len(counts))
	for _, key := range keys {
		if value, ok := counts[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", key, value))
		}
	}
	return strings.Join(parts, " ")
}
