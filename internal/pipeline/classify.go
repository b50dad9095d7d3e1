package pipeline

import (
	"strings"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/vocab"
)

// Classifier maps raw tags, taxonomy and free text onto the closed attribute
// vocabularies. It is stateless apart from the read-only rule tables and
// never overwrites a value that is already valid.
type Classifier struct {
	vocab vocab.Vocabulary
}

func NewClassifier(v vocab.Vocabulary) *Classifier {
	return &Classifier{vocab: v}
}

// Classify fills the record's enumerated attributes in place. Signals are
// consulted strongest-first: explicit category/type tags, then the taxonomic
// family, then a free-text scan; a field with no signal stays null rather
// than holding a guess. Propagation is the one total field: it always ends
// up non-empty.
func (c *Classifier) Classify(record *internal.PlantRecord) {
	tagText := strings.ToLower(strings.Join(record.Tags(), " "))
	freeText := strings.ToLower(record.Name + " " + record.ScientificName + " " + record.Description)

	var override vocab.FamilyOverride
	if record.Taxonomy != nil && record.Taxonomy.Family != nil {
		override = c.vocab.FamilyOverrides[strings.ToLower(strings.TrimSpace(*record.Taxonomy.Family))]
	}

	record.PlantType = c.resolve(record.PlantType, vocab.FieldPlantType, c.vocab.Keywords.PlantType, tagText, override.PlantType, freeText, "")
	record.GrowthPattern = c.resolve(record.GrowthPattern, vocab.FieldGrowthPattern, c.vocab.Keywords.GrowthPattern, tagText, "", freeText, "")
	record.GrowthHabit = c.resolve(record.GrowthHabit, vocab.FieldGrowthHabit, c.vocab.Keywords.GrowthHabit, tagText, override.GrowthHabit, freeText, "")
	record.Hazard = c.resolve(record.Hazard, vocab.FieldHazard, c.vocab.Keywords.Hazard, tagText, override.Hazard, freeText, "")
	record.Rarity = c.resolve(record.Rarity, vocab.FieldRarity, c.vocab.Keywords.Rarity, tagText, "", freeText, "")
	record.FloweringPeriod = c.resolve(record.FloweringPeriod, vocab.FieldFloweringPeriod, c.vocab.Keywords.FloweringPeriod, tagText, override.FloweringPeriod, freeText, "")

	// Only aquarium plants ever want injected CO2; everything else defaults
	// to not-required instead of staying null.
	co2Fallback := "not-required"
	if habit := deref(record.GrowthHabit); habit == "fully-aquatic" || habit == "emergent-aquatic" {
		co2Fallback = "beneficial"
	}
	record.CO2 = c.resolve(record.CO2, vocab.FieldCO2, c.vocab.Keywords.CO2, tagText, "", freeText, co2Fallback)

	record.Propagation = c.propagation(record, tagText)
}

// resolve keeps a still-valid value, otherwise works down the signal
// priority. An invalid existing value is replaced by whatever the rules
// produce, or cleared to null — free text never leaks into an enumerated
// field.
func (c *Classifier) resolve(current *string, field string, rules []vocab.KeywordRule, tagText, familyValue, freeText, fallback string) *string {
	if current != nil && c.vocab.IsValid(field, strings.TrimSpace(*current)) {
		return current
	}
	if value := matchRules(rules, tagText); value != "" {
		return &value
	}
	if familyValue != "" && c.vocab.IsValid(field, familyValue) {
		value := familyValue
		return &value
	}
	if value := matchRules(rules, freeText); value != "" {
		return &value
	}
	if fallback != "" {
		value := fallback
		return &value
	}
	return nil
}

func matchRules(rules []vocab.KeywordRule, text string) string {
	if text == "" {
		return ""
	}
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Value
			}
		}
	}
	return ""
}

// propagation applies the decision table over the already-classified
// attributes and raw tags. Unlike the other fields it is total: the fallback
// always applies when no rule matches.
func (c *Classifier) propagation(record *internal.PlantRecord, tagText string) *string {
	if record.Propagation != nil && c.validPropagation(*record.Propagation) {
		return record.Propagation
	}

	for _, rule := range c.vocab.PropagationRules {
		if rule.PlantType != "" && deref(record.PlantType) != rule.PlantType {
			continue
		}
		if rule.GrowthHabit != "" && deref(record.GrowthHabit) != rule.GrowthHabit {
			continue
		}
		if rule.GrowthPattern != "" && deref(record.GrowthPattern) != rule.GrowthPattern {
			continue
		}
		if len(rule.CategoryAny) > 0 && !anyTagMatch(tagText, rule.CategoryAny) {
			continue
		}
		joined := strings.Join(rule.Methods, ", ")
		return &joined
	}

	joined := strings.Join(c.vocab.PropagationFallback, ", ")
	return &joined
}

// validPropagation accepts only comma-joined subsets of the propagation
// vocabulary.
func (c *Classifier) validPropagation(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		found := false
		for _, method := range c.vocab.Propagations {
			if strings.EqualFold(method, part) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func anyTagMatch(tagText string, categories []string) bool {
	if tagText == "" {
		return false
	}
	for _, category := range categories {
		if strings.Contains(tagText, strings.ToLower(category)) {
			return true
		}
	}
	return false
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
