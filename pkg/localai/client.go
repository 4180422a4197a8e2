// Package localai is a client for LocalAI and other locally hosted
// inference servers exposing an OpenAI-style HTTP API. It covers two
// endpoints: model listing and streaming text completions.
package localai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/melkersson/lais/pkg/prompt"
)

// DefaultAPIBase points at a LocalAI server on its default port.
const DefaultAPIBase = "http://localhost:8080/v1"

// Client issues requests against a single API base. It holds no mutable
// state, so concurrent calls on the same instance are safe, each
// streaming call opens its own connection.
type Client struct {
	apiBase  string
	sampling SamplingConfig
	client   *http.Client
	debug    bool
}

// DefaultSampling returns the sampling parameters tuned for short
// deterministic answers from Phi-family instruct models.
func DefaultSampling() SamplingConfig {
	return SamplingConfig{
		TopP:             0.1,
		Temperature:      0.3,
		Stop:             prompt.StopTokens(),
		MaxTokens:        1024,
		PresencePenalty:  0.0,
		FrequencyPenalty: 0.0,
	}
}

// New creates a Client with DefaultSampling. An empty apiBase falls back
// to DefaultAPIBase.
func New(apiBase string) *Client {
	return NewWithSampling(apiBase, DefaultSampling())
}

func NewWithSampling(apiBase string, sampling SamplingConfig) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Client{
		apiBase:  strings.TrimSuffix(apiBase, "/"),
		sampling: sampling,
		client:   &http.Client{},
		debug:    misc.Truthy(os.Getenv("DEBUG")),
	}
}

// ListModels fetches the models the server currently serves. The decoded
// body is passed through verbatim, there is no error translation: a
// non-200 status or a malformed body surfaces as a plain error.
func (c *Client) ListModels(ctx context.Context) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("unexpected status code: %v, body: %v", res.Status, string(body))
	}
	var mdls any
	if err := json.NewDecoder(res.Body).Decode(&mdls); err != nil {
		return nil, fmt.Errorf("failed to decode models response: %w", err)
	}
	return mdls, nil
}
