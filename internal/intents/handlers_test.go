package intents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbuddy/internal/nlu"
)

func TestWeatherPrefersGPE(t *testing.T) {
	r := NewRegistry(nil)

	entities := []nlu.Entity{
		{Label: nlu.LabelLOC, Text: "the Alps"},
		{Label: nlu.LabelGPE, Text: "Paris"},
	}
	reply, err := r.Handle(context.Background(), nlu.IntentGetWeather, entities)
	require.NoError(t, err)
	assert.Equal(t, "The weather in Paris is sunny and 25°C.", reply)
}

func TestWeatherFallsBackToLOC(t *testing.T) {
	r := NewRegistry(nil)

	entities := []nlu.Entity{{Label: nlu.LabelLOC, Text: "the Sahara"}}
	reply, err := r.Handle(context.Background(), nlu.IntentGetWeather, entities)
	require.NoError(t, err)
	assert.Equal(t, "The weather in the Sahara is sunny and 25°C.", reply)
}

func TestWeatherWithoutEntities(t *testing.T) {
	r := NewRegistry(nil)

	reply, err := r.Handle(context.Background(), nlu.IntentGetWeather, nil)
	require.NoError(t, err)
	assert.Equal(t, "The weather in your location is sunny and 25°C.", reply)
}

func TestTimeFormat(t *testing.T) {
	r := NewRegistry(nil)

	reply, err := r.Handle(context.Background(), nlu.IntentGetTime, nil)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^The current time is \d{2}:\d{2}:\d{2}\.$`), reply)
}

func TestTimeUsesClock(t *testing.T) {
	r := NewRegistry(nil)
	r.now = func() time.Time {
		return time.Date(2026, 8, 30, 9, 5, 7, 0, time.UTC)
	}

	reply, err := r.Handle(context.Background(), nlu.IntentGetTime, nil)
	require.NoError(t, err)
	assert.Equal(t, "The current time is 09:05:07.", reply)
}

func TestJokeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"setup":"Why did the developer go broke?","punchline":"Because he used up all his cache."}`))
	}))
	defer srv.Close()

	r := NewRegistry(NewJokeClient(srv.URL, time.Second))
	reply, err := r.Handle(context.Background(), nlu.IntentTellJoke, nil)
	require.NoError(t, err)
	assert.Equal(t, "Why did the developer go broke? - Because he used up all his cache.", reply)
}

func TestJokeNonSuccessStatusYieldsApology(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRegistry(NewJokeClient(srv.URL, time.Second))
	reply, err := r.Handle(context.Background(), nlu.IntentTellJoke, nil)
	require.NoError(t, err)
	assert.Equal(t, jokeApology, reply)
}

func TestJokeWithoutClientYieldsApology(t *testing.T) {
	r := NewRegistry(nil)

	reply, err := r.Handle(context.Background(), nlu.IntentTellJoke, nil)
	require.NoError(t, err)
	assert.Equal(t, jokeApology, reply)
}

func TestJokeTransportErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // unreachable

	r := NewRegistry(NewJokeClient(srv.URL, time.Second))
	reply, err := r.Handle(context.Background(), nlu.IntentTellJoke, nil)
	require.Error(t, err)
	assert.Empty(t, reply)
}

func TestGeneralHasNoHandler(t *testing.T) {
	r := NewRegistry(nil)

	reply, err := r.Handle(context.Background(), nlu.IntentGeneral, nil)
	require.NoError(t, err)
	assert.Empty(t, reply)
}
