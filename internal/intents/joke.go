package intents

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Joke is the payload served by the joke API.
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// ErrJokeUnavailable reports a non-success status from the joke API.
var ErrJokeUnavailable = errors.New("joke API returned a non-success status")

// JokeClient fetches one-liners from a {setup, punchline} HTTP API.
type JokeClient struct {
	url    string
	client *http.Client
}

func NewJokeClient(url string, timeout time.Duration) *JokeClient {
	return &JokeClient{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *JokeClient) Fetch(ctx context.Context) (*Joke, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building joke request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching joke")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrJokeUnavailable
	}

	var joke Joke
	if err := json.NewDecoder(resp.Body).Decode(&joke); err != nil {
		return nil, errors.Wrap(err, "decoding joke")
	}
	return &joke, nil
}
