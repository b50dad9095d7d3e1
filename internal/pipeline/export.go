package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/library"
)

func BuildInventoryRows(records []*internal.PlantRecord) []internal.InventoryRow {
	rows := make([]internal.InventoryRow, 0, len(records))
	for _, record := range records {
		row := internal.InventoryRow{
			FileName:        record.FileName,
			ID:              record.ID,
			Name:            record.Name,
			ScientificName:  record.ScientificName,
			CanonicalKey:    library.KeyFor(record),
			PlantType:       record.PlantType,
			GrowthPattern:   record.GrowthPattern,
			GrowthHabit:     record.GrowthHabit,
			Hazard:          record.Hazard,
			Rarity:          record.Rarity,
			Propagation:     record.Propagation,
			FloweringPeriod: record.FloweringPeriod,
			CO2:             record.CO2,
			ImageCount:      len(record.Images),
			DescriptionLen:  len(record.Description),
		}
		if record.Taxonomy != nil && record.Taxonomy.Family != nil {
			row.Family = *record.Taxonomy.Family
		}
		if record.VariantInfo != nil && record.VariantInfo.IsVariant {
			row.IsVariant = true
			row.BaseSpecies = record.VariantInfo.BaseSpecies
		}
		rows = append(rows, row)
	}
	return rows
}

func ExportInventoryXLSX(rows []internal.InventoryRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"file", "id", "name", "scientific_name", "canonical_key", "family",
		"plant_type", "growth_pattern", "growth_habit", "hazard", "rarity",
		"propagation", "flowering_period", "co2",
		"image_count", "description_len", "is_variant", "base_species",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.FileName)
		set(2, derefInt(row.ID))
		set(3, row.Name)
		set(4, row.ScientificName)
		set(5, row.CanonicalKey)
		set(6, row.Family)
		set(7, derefString(row.PlantType))
		set(8, derefString(row.GrowthPattern))
		set(9, derefString(row.GrowthHabit))
		set(10, derefString(row.Hazard))
		set(11, derefString(row.Rarity))
		set(12, derefString(row.Propagation))
		set(13, derefString(row.FloweringPeriod))
		set(14, derefString(row.CO2))
		set(15, row.ImageCount)
		set(16, row.DescriptionLen)
		set(17, row.IsVariant)
		set(18, row.BaseSpecies)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func ExportReviewXLSX(pairs []internal.ReviewPair, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"status", "score", "left_file", "left_name", "left_key",
		"right_file", "right_name", "right_key",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, pair := range pairs {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, string(pair.Status))
		set(2, pair.Score)
		set(3, pair.LeftFile)
		set(4, pair.LeftName)
		set(5, pair.LeftKey)
		set(6, pair.RightFile)
		set(7, pair.RightName)
		set(8, pair.RightKey)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
