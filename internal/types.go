package internal

import (
	"encoding/json"
	"strings"
)

// TagList accepts both `"succulent"` and `["succulent","aquarium"]` in source
// documents; records are rewritten with the array form.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*t = nil
		return nil
	}
	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		single = strings.TrimSpace(single)
		if single == "" {
			*t = nil
			return nil
		}
		*t = TagList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	out := make([]string, 0, len(many))
	for _, tag := range many {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	*t = TagList(out)
	return nil
}

func (t TagList) Contains(tag string) bool {
	for _, have := range t {
		if strings.EqualFold(strings.TrimSpace(have), tag) {
			return true
		}
	}
	return false
}

type Taxonomy struct {
	Kingdom *string `json:"kingdom,omitempty"`
	Phylum  *string `json:"phylum,omitempty"`
	Class   *string `json:"class,omitempty"`
	Order   *string `json:"order,omitempty"`
	Family  *string `json:"family,omitempty"`
	Genus   *string `json:"genus,omitempty"`
	Species *string `json:"species,omitempty"`
}

// PopulatedRanks counts non-empty ranks; the merger keeps whichever taxonomy
// has strictly more of them.
func (t *Taxonomy) PopulatedRanks() int {
	if t == nil {
		return 0
	}
	count := 0
	for _, rank := range []*string{t.Kingdom, t.Phylum, t.Class, t.Order, t.Family, t.Genus, t.Species} {
		if rank != nil && strings.TrimSpace(*rank) != "" {
			count++
		}
	}
	return count
}

// VariantInfo tags a cultivar/variegated form so it survives deduplication as
// a sibling of the base species instead of being merged into it.
type VariantInfo struct {
	IsVariant             bool   `json:"isVariant"`
	BaseSpecies           string `json:"baseSpecies"`
	VariantName           string `json:"variantName,omitempty"`
	VariantScientificName string `json:"variantScientificName,omitempty"`
}

type PlantRecord struct {
	ID             *int      `json:"id,omitempty"`
	Name           string    `json:"name"`
	ScientificName string    `json:"scientificName,omitempty"`
	Taxonomy       *Taxonomy `json:"taxonomy,omitempty"`
	Category       TagList   `json:"category,omitempty"`
	Type           TagList   `json:"type,omitempty"`
	Description    string    `json:"description,omitempty"`
	Images         []string  `json:"images,omitempty"`

	PlantType       *string `json:"plantType,omitempty"`
	GrowthPattern   *string `json:"growthPattern,omitempty"`
	GrowthHabit     *string `json:"growthHabit,omitempty"`
	Hazard          *string `json:"hazard,omitempty"`
	Rarity          *string `json:"rarity,omitempty"`
	Propagation     *string `json:"propagation,omitempty"`
	FloweringPeriod *string `json:"floweringPeriod,omitempty"`
	CO2             *string `json:"co2,omitempty"`

	Difficulty        *string `json:"difficulty,omitempty"`
	LightRequirements *string `json:"lightRequirements,omitempty"`
	Humidity          *string `json:"humidity,omitempty"`
	Temperature       *string `json:"temperature,omitempty"`
	Watering          *string `json:"watering,omitempty"`
	Substrate         *string `json:"substrate,omitempty"`
	Size              *string `json:"size,omitempty"`
	GrowthRate        *string `json:"growthRate,omitempty"`

	VariantInfo *VariantInfo `json:"variantInfo,omitempty"`

	// FileName is the backing document inside the plants directory. Set by
	// the loader, never serialized.
	FileName string `json:"-"`
}

func (r *PlantRecord) Tags() []string {
	out := make([]string, 0, len(r.Category)+len(r.Type))
	out = append(out, r.Category...)
	out = append(out, r.Type...)
	return out
}

type ReviewStatus string

const (
	ReviewLikely   ReviewStatus = "LIKELY"
	ReviewPossible ReviewStatus = "POSSIBLE"
)

// ReviewPair is a cross-bucket near-duplicate candidate. Pairs are reported
// for human review only; the pipeline never merges on fuzzy scores.
type ReviewPair struct {
	Status    ReviewStatus `json:"status"`
	Score     float64      `json:"score"`
	LeftFile  string       `json:"leftFile"`
	LeftName  string       `json:"leftName"`
	LeftKey   string       `json:"leftKey"`
	RightFile string       `json:"rightFile"`
	RightName string       `json:"rightName"`
	RightKey  string       `json:"rightKey"`
}

// RunSummary aggregates per-record outcomes of a reconcile run. Write
// failures on individual records are counted, not fatal; only the index
// manifest write aborts a run.
type RunSummary struct {
	Loaded    int `json:"loaded"`
	Malformed int `json:"malformed"`
	NonPlants int `json:"nonPlants"`
	Merged    int `json:"merged"`
	Variants  int `json:"variants"`
	Survivors int `json:"survivors"`
	Updated   int `json:"updated"`
	Deleted   int `json:"deleted"`
	Errored   int `json:"errored"`

	// NullAttributes counts records the classifier left undecided, per
	// enumerated field. A data-quality signal, not an error.
	NullAttributes map[string]int `json:"nullAttributes"`
}

type InventoryRow struct {
	FileName        string
	ID              *int
	Name            string
	ScientificName  string
	CanonicalKey    string
	Family          string
	PlantType       *string
	GrowthPattern   *string
	GrowthHabit     *string
	Hazard          *string
	Rarity          *string
	Propagation     *string
	FloweringPeriod *string
	CO2             *string
	ImageCount      int
	DescriptionLen  int
	IsVariant       bool
	BaseSpecies     string
}
