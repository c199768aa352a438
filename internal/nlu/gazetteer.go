package nlu

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// GazetteerExtractor is a lightweight stand-in for a full NER model:
// it scans the message for known place names and labels them GPE or
// LOC. Unknown text yields no entities, which the handlers treat the
// same as a missing location.
type GazetteerExtractor struct {
	names map[string]string // lowercased name -> label
}

var gpeNames = []string{
	"london", "paris", "tokyo", "berlin", "madrid", "rome", "moscow",
	"new york", "los angeles", "chicago", "san francisco", "toronto",
	"sydney", "nairobi", "cairo", "addis ababa", "lagos", "mumbai",
	"france", "germany", "japan", "kenya", "canada", "australia",
	"england", "spain", "italy", "india", "brazil", "egypt",
}

var locNames = []string{
	"the alps", "the sahara", "the himalayas", "mount everest",
	"the nile", "the amazon", "the pacific", "the atlantic",
}

func NewGazetteerExtractor() *GazetteerExtractor {
	names := make(map[string]string, len(gpeNames)+len(locNames))
	for _, n := range gpeNames {
		names[n] = LabelGPE
	}
	for _, n := range locNames {
		names[n] = LabelLOC
	}
	return &GazetteerExtractor{names: names}
}

// Extract reports every known name found in the text, ordered by
// position of the first occurrence. The entity text keeps the casing
// the user typed.
func (g *GazetteerExtractor) Extract(_ context.Context, text string) ([]Entity, error) {
	// Lowercasing can change a rune's byte length, so matches on the
	// lowered string are mapped back to spans of the original through
	// the offset table.
	lower, offsets := lowerWithOffsets(text)

	type match struct {
		pos    int
		entity Entity
	}
	var found []match
	for name, label := range g.names {
		idx := strings.Index(lower, name)
		if idx < 0 {
			continue
		}
		start, end := offsets[idx], offsets[idx+len(name)]
		found = append(found, match{
			pos:    start,
			entity: Entity{Label: label, Text: text[start:end]},
		})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	entities := make([]Entity, 0, len(found))
	for _, m := range found {
		entities = append(entities, m.entity)
	}
	return entities, nil
}

// lowerWithOffsets lowercases s rune by rune and returns, for every
// byte position in the lowered string (plus one past the end), the
// byte position of the originating rune in s.
func lowerWithOffsets(s string) (string, []int) {
	var sb strings.Builder
	sb.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)
	for i, r := range s {
		lr := unicode.ToLower(r)
		for j := 0; j < utf8.RuneLen(lr); j++ {
			offsets = append(offsets, i)
		}
		sb.WriteRune(lr)
	}
	offsets = append(offsets, len(s))
	return sb.String(), offsets
}
