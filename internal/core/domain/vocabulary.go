package domain

import (
	"fmt"
	"strings"
)

// Category is the closed set of chunk categories.
type Category string

// Available categories.
const (
	// CategoryFeeSchedule marks a chunk that carries fee tables or rates.
	CategoryFeeSchedule Category = "fee_schedule"

	// CategoryFootnotes marks a chunk that carries footnote text.
	CategoryFootnotes Category = "footnotes"
)

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{CategoryFeeSchedule, CategoryFootnotes}
}

// IsValid returns true if the category is recognised.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFeeSchedule, CategoryFootnotes:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Subtypes returns the subtypes allowed for the category.
// Returns nil for an unrecognised category.
func (c Category) Subtypes() []Subtype {
	switch c {
	case CategoryFeeSchedule:
		return []Subtype{
			SubtypeParticipantFee,
			SubtypeLegalRegulatoryFee,
			SubtypePortFeesAndOtherServices,
			SubtypeMarketDataFees,
			SubtypeFeesAndRebates,
		}
	case CategoryFootnotes:
		return []Subtype{SubtypeReference}
	default:
		return nil
	}
}

// Label is the closed set of human-readable chunk labels.
type Label string

// Available labels.
const (
	LabelFeeSchedule Label = "Fee Schedule"
	LabelFootnotes   Label = "Footnotes"
)

// Labels returns every label in declaration order.
func Labels() []Label {
	return []Label{LabelFeeSchedule, LabelFootnotes}
}

// IsValid returns true if the label is recognised.
func (l Label) IsValid() bool {
	switch l {
	case LabelFeeSchedule, LabelFootnotes:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l Label) String() string {
	return string(l)
}

// Subtype refines a category. Each category owns its own closed subtype set.
type Subtype string

// Fee schedule subtypes.
const (
	SubtypeParticipantFee           Subtype = "participant_fee"
	SubtypeLegalRegulatoryFee       Subtype = "legal_regulatory_fee"
	SubtypePortFeesAndOtherServices Subtype = "port_fees_and_other_services"
	SubtypeMarketDataFees           Subtype = "market_data_fees"
	SubtypeFeesAndRebates           Subtype = "fees_and_rebates"
)

// Footnotes subtypes.
const (
	SubtypeReference Subtype = "reference"
)

// String returns the string representation.
func (s Subtype) String() string {
	return string(s)
}

// RelationType is the closed set of directed relation kinds between chunks.
type RelationType string

// Available relation types.
const (
	RelationDependencies RelationType = "dependencies"
	RelationFootnotes    RelationType = "footnotes"
	RelationReferences   RelationType = "references"
)

// RelationTypes returns every relation type in declaration order.
func RelationTypes() []RelationType {
	return []RelationType{RelationDependencies, RelationFootnotes, RelationReferences}
}

// IsValid returns true if the relation type is recognised.
func (r RelationType) IsValid() bool {
	switch r {
	case RelationDependencies, RelationFootnotes, RelationReferences:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r RelationType) String() string {
	return string(r)
}

// ValidateCategory checks a raw category against the closed vocabulary.
func ValidateCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.IsValid() {
		options := stringsOf(Categories())
		return "", &Error{
			Kind:         KindInvalidCategory,
			Category:     raw,
			ValidOptions: options,
			Message:      fmt.Sprintf("Invalid category '%s'. Valid options: %s", raw, strings.Join(options, ", ")),
		}
	}
	return c, nil
}

// ValidateLabel checks a raw label against the closed vocabulary.
// Label failures share the InvalidCategory wire shape.
func ValidateLabel(raw string) (Label, error) {
	l := Label(raw)
	if !l.IsValid() {
		options := stringsOf(Labels())
		return "", &Error{
			Kind:         KindInvalidCategory,
			Category:     raw,
			ValidOptions: options,
			Message:      fmt.Sprintf("Invalid label '%s'. Valid options: %s", raw, strings.Join(options, ", ")),
		}
	}
	return l, nil
}

// ValidateSubtypeForCategory checks that raw is one of the category's subtypes.
func ValidateSubtypeForCategory(category Category, raw string) (Subtype, error) {
	switch category {
	case CategoryFeeSchedule, CategoryFootnotes:
		allowed := category.Subtypes()
		for _, s := range allowed {
			if string(s) == raw {
				return s, nil
			}
		}
		options := stringsOf(allowed)
		return "", &Error{
			Kind:         KindInvalidSubtype,
			Subtype:      raw,
			Category:     string(category),
			ValidOptions: options,
			Message: fmt.Sprintf("Invalid subtype '%s' for category '%s'. Valid options: %s",
				raw, category, strings.Join(options, ", ")),
		}
	default:
		// Unreachable for categories produced by ValidateCategory. A new category
		// constant without a case above lands here instead of passing silently.
		options := stringsOf(Categories())
		return "", &Error{
			Kind:         KindInvalidCategory,
			Category:     string(category),
			ValidOptions: options,
			Message: fmt.Sprintf("Unhandled category '%s'. Valid options: %s",
				category, strings.Join(options, ", ")),
		}
	}
}

// ValidateRelationType checks a raw relation type against the closed vocabulary.
func ValidateRelationType(raw string) (RelationType, error) {
	r := RelationType(raw)
	if !r.IsValid() {
		options := stringsOf(RelationTypes())
		return "", &Error{
			Kind:         KindInvalidRelationType,
			RelationType: raw,
			ValidOptions: options,
			Message:      fmt.Sprintf("Invalid relation type '%s'. Valid options: %s", raw, strings.Join(options, ", ")),
		}
	}
	return r, nil
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
