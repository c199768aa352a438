// Package nlu classifies user messages into a closed intent set and
// extracts labelled entities for the intent handlers.
package nlu

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Intent labels.
const (
	IntentGeneral    = "general"
	IntentGetWeather = "get_weather"
	IntentTellJoke   = "tell_joke"
	IntentGetTime    = "get_time"
)

// Entity labels produced by extractors.
const (
	LabelGPE = "GPE" // geopolitical entity: cities, countries
	LabelLOC = "LOC" // other locations
)

// Entity is a labelled span extracted from the message text.
type Entity struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Result is the outcome of analyzing one message. Produced per
// message, never retained.
type Result struct {
	Intent   string   `json:"intent"`
	Entities []Entity `json:"entities"`
}

// Extractor produces labelled entities from raw text. Implementations
// may fail; the resolver treats any failure as "no entities".
type Extractor interface {
	Extract(ctx context.Context, text string) ([]Entity, error)
}

// Keyword tables checked in priority order; the first match wins.
var (
	weatherWords = []string{"weather", "temperature", "forecast"}
	jokeWords    = []string{"joke", "funny", "laugh"}
	timeWords    = []string{"time", "hour", "clock"}
)

// Resolver maps raw text to an intent and an entity list. A nil
// extractor is allowed; resolution then degrades to intent matching
// alone.
type Resolver struct {
	extractor Extractor
}

func NewResolver(extractor Extractor) *Resolver {
	return &Resolver{extractor: extractor}
}

// Resolve never fails: extractor errors degrade to an empty entity
// list and unmatched messages resolve to the general intent.
func (r *Resolver) Resolve(ctx context.Context, text string) Result {
	var entities []Entity
	if r.extractor != nil {
		ents, err := r.extractor.Extract(ctx, text)
		if err != nil {
			log.Warn().Err(err).Msg("entity extraction failed, continuing without entities")
		} else {
			entities = ents
		}
	}

	lower := strings.ToLower(text)
	intent := IntentGeneral
	switch {
	case containsAny(lower, weatherWords):
		intent = IntentGetWeather
	case containsAny(lower, jokeWords):
		intent = IntentTellJoke
	case containsAny(lower, timeWords):
		intent = IntentGetTime
	}

	return Result{Intent: intent, Entities: entities}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
