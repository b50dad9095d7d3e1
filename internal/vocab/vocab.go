// Package vocab holds the closed vocabularies and classification rule tables
// consumed by the attribute classifier and the non-plant filter. Tables are
// immutable after load; callers receive them by value and pass them
// explicitly, so tests can substitute trimmed vocabularies.
package vocab

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Enumerated field names, used as keys in summaries and YAML files.
const (
	FieldPlantType       = "plantType"
	FieldGrowthPattern   = "growthPattern"
	FieldGrowthHabit     = "growthHabit"
	FieldHazard          = "hazard"
	FieldRarity          = "rarity"
	FieldFloweringPeriod = "floweringPeriod"
	FieldCO2             = "co2"
	FieldPropagation     = "propagation"
)

// EnumeratedFields lists the closed-vocabulary fields in report order.
// Propagation is excluded: it is total and never null.
var EnumeratedFields = []string{
	FieldPlantType, FieldGrowthPattern, FieldGrowthHabit, FieldHazard,
	FieldRarity, FieldFloweringPeriod, FieldCO2,
}

// KeywordRule maps free-text indicators to one vocabulary value. Rules are
// evaluated in order; the first rule with a matching keyword wins.
type KeywordRule struct {
	Keywords []string `yaml:"keywords"`
	Value    string   `yaml:"value"`
}

// FamilyOverride forces attribute values for records of a taxonomic family.
// Family rank outranks free-text keywords. Empty fields mean "no opinion".
type FamilyOverride struct {
	PlantType       string `yaml:"plantType,omitempty"`
	GrowthHabit     string `yaml:"growthHabit,omitempty"`
	FloweringPeriod string `yaml:"floweringPeriod,omitempty"`
	Hazard          string `yaml:"hazard,omitempty"`
}

// PropagationRule matches on any combination of classified attributes and
// category tags; all populated conditions must hold. First match wins.
type PropagationRule struct {
	PlantType     string   `yaml:"plantType,omitempty"`
	GrowthHabit   string   `yaml:"growthHabit,omitempty"`
	GrowthPattern string   `yaml:"growthPattern,omitempty"`
	CategoryAny   []string `yaml:"categoryAny,omitempty"`
	Methods       []string `yaml:"methods"`
}

type KeywordTables struct {
	PlantType       []KeywordRule `yaml:"plantType,omitempty"`
	GrowthPattern   []KeywordRule `yaml:"growthPattern,omitempty"`
	GrowthHabit     []KeywordRule `yaml:"growthHabit,omitempty"`
	Hazard          []KeywordRule `yaml:"hazard,omitempty"`
	Rarity          []KeywordRule `yaml:"rarity,omitempty"`
	FloweringPeriod []KeywordRule `yaml:"floweringPeriod,omitempty"`
	CO2             []KeywordRule `yaml:"co2,omitempty"`
}

type Vocabulary struct {
	PlantTypes       []string `yaml:"plantTypes,omitempty"`
	GrowthPatterns   []string `yaml:"growthPatterns,omitempty"`
	GrowthHabits     []string `yaml:"growthHabits,omitempty"`
	Hazards          []string `yaml:"hazards,omitempty"`
	Rarities         []string `yaml:"rarities,omitempty"`
	FloweringPeriods []string `yaml:"floweringPeriods,omitempty"`
	CO2Levels        []string `yaml:"co2Levels,omitempty"`
	Propagations     []string `yaml:"propagations,omitempty"`

	// FamilyOverrides is keyed by lowercased family name.
	FamilyOverrides map[string]FamilyOverride `yaml:"familyOverrides,omitempty"`

	Keywords KeywordTables `yaml:"keywords,omitempty"`

	PropagationRules    []PropagationRule `yaml:"propagationRules,omitempty"`
	PropagationFallback []string          `yaml:"propagationFallback,omitempty"`

	// NonPlantPatterns are matched as whole words against record names;
	// names containing a NonPlantException substring are always kept.
	NonPlantPatterns   []string `yaml:"nonPlantPatterns,omitempty"`
	NonPlantExceptions []string `yaml:"nonPlantExceptions,omitempty"`

	// CarePlaceholders are values treated as "not really filled in" when
	// merging care fields.
	CarePlaceholders []string `yaml:"carePlaceholders,omitempty"`
}

// Load returns the built-in vocabulary, with non-empty sections of the YAML
// file at path layered over it. An empty path returns the defaults.
func Load(path string) (Vocabulary, error) {
	v := Default()
	if strings.TrimSpace(path) == "" {
		return v, nil
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary file: %w", err)
	}
	var override Vocabulary
	if err := yaml.Unmarshal(blob, &override); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary file: %w", err)
	}

	v.merge(override)
	return v, nil
}

func (v *Vocabulary) merge(o Vocabulary) {
	if len(o.PlantTypes) > 0 {
		v.PlantTypes = o.PlantTypes
	}
	if len(o.GrowthPatterns) > 0 {
		v.GrowthPatterns = o.GrowthPatterns
	}
	if len(o.GrowthHabits) > 0 {
		v.GrowthHabits = o.GrowthHabits
	}
	if len(o.Hazards) > 0 {
		v.Hazards = o.Hazards
	}
	if len(o.Rarities) > 0 {
		v.Rarities = o.Rarities
	}
	if len(o.FloweringPeriods) > 0 {
		v.FloweringPeriods = o.FloweringPeriods
	}
	if len(o.CO2Levels) > 0 {
		v.CO2Levels = o.CO2Levels
	}
	if len(o.Propagations) > 0 {
		v.Propagations = o.Propagations
	}
	if len(o.FamilyOverrides) > 0 {
		v.FamilyOverrides = o.FamilyOverrides
	}
	if len(o.Keywords.PlantType) > 0 {
		v.Keywords.PlantType = o.Keywords.PlantType
	}
	if len(o.Keywords.GrowthPattern) > 0 {
		v.Keywords.GrowthPattern = o.Keywords.GrowthPattern
	}
	if len(o.Keywords.GrowthHabit) > 0 {
		v.Keywords.GrowthHabit = o.Keywords.GrowthHabit
	}
	if len(o.Keywords.Hazard) > 0 {
		v.Keywords.Hazard = o.Keywords.Hazard
	}
	if len(o.Keywords.Rarity) > 0 {
		v.Keywords.Rarity = o.Keywords.Rarity
	}
	if len(o.Keywords.FloweringPeriod) > 0 {
		v.Keywords.FloweringPeriod = o.Keywords.FloweringPeriod
	}
	if len(o.Keywords.CO2) > 0 {
		v.Keywords.CO2 = o.Keywords.CO2
	}
	if len(o.PropagationRules) > 0 {
		v.PropagationRules = o.PropagationRules
	}
	if len(o.PropagationFallback) > 0 {
		v.PropagationFallback = o.PropagationFallback
	}
	if len(o.NonPlantPatterns) > 0 {
		v.NonPlantPatterns = o.NonPlantPatterns
	}
	if len(o.NonPlantExceptions) > 0 {
		v.NonPlantExceptions = o.NonPlantExceptions
	}
	if len(o.CarePlaceholders) > 0 {
		v.CarePlaceholders = o.CarePlaceholders
	}
}

// IsValid reports whether value belongs to the closed set for field. Unknown
// field names are never valid.
func (v *Vocabulary) IsValid(field, value string) bool {
	var set []string
	switch field {
	case FieldPlantType:
		set = v.PlantTypes
	case FieldGrowthPattern:
		set = v.GrowthPatterns
	case FieldGrowthHabit:
		set = v.GrowthHabits
	case FieldHazard:
		set = v.Hazards
	case FieldRarity:
		set = v.Rarities
	case FieldFloweringPeriod:
		set = v.FloweringPeriods
	case FieldCO2:
		set = v.CO2Levels
	default:
		return false
	}
	for _, member := range set {
		if member == value {
			return true
		}
	}
	return false
}

// IsPlaceholder reports whether a care-field value carries no information.
func (v *Vocabulary) IsPlaceholder(value *string) bool {
	if value == nil {
		return true
	}
	trimmed := strings.ToLower(strings.TrimSpace(*value))
	if trimmed == "" {
		return true
	}
	for _, p := range v.CarePlaceholders {
		if trimmed == p {
			return true
		}
	}
	return false
}
