// Package intents implements canned handlers for the closed intent
// set. Handlers short-circuit the model pipeline with templated or
// fetched replies.
package intents

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"chatbuddy/internal/nlu"
)

const (
	weatherTemplate = "The weather in %s is sunny and 25°C."
	defaultLocation = "your location"
	jokeApology     = "Sorry, I couldn't fetch a joke right now."
)

// Registry dispatches recognized intents to their handlers.
type Registry struct {
	jokes *JokeClient
	now   func() time.Time
}

func NewRegistry(jokes *JokeClient) *Registry {
	return &Registry{jokes: jokes, now: time.Now}
}

// Handle returns the canned reply for the intent, or an empty string
// for intents with no handler (general). Errors are advisory: the
// caller logs them and falls through to the model.
func (r *Registry) Handle(ctx context.Context, intent string, entities []nlu.Entity) (string, error) {
	switch intent {
	case nlu.IntentGetWeather:
		return r.weather(entities), nil
	case nlu.IntentTellJoke:
		return r.joke(ctx)
	case nlu.IntentGetTime:
		return fmt.Sprintf("The current time is %s.", r.now().Format("15:04:05")), nil
	}
	return "", nil
}

// weather is an explicit stub: it interpolates the best location
// entity into a fixed template rather than querying a weather API.
// Geopolitical entities win over generic locations.
func (r *Registry) weather(entities []nlu.Entity) string {
	for _, label := range []string{nlu.LabelGPE, nlu.LabelLOC} {
		for _, e := range entities {
			if e.Label == label {
				return fmt.Sprintf(weatherTemplate, e.Text)
			}
		}
	}
	return fmt.Sprintf(weatherTemplate, defaultLocation)
}

// joke answers with the apology when no client is configured or the
// joke API refuses, and with an error when it cannot be reached at
// all.
func (r *Registry) joke(ctx context.Context) (string, error) {
	if r.jokes == nil {
		return jokeApology, nil
	}
	joke, err := r.jokes.Fetch(ctx)
	if errors.Is(err, ErrJokeUnavailable) {
		return jokeApology, nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s - %s", joke.Setup, joke.Punchline), nil
}
