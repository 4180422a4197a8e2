package localai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/google/uuid"
	"github.com/melkersson/lais/pkg/models"
	"github.com/melkersson/lais/pkg/prompt"
)

var dataPrefix = []byte("data: ")

const doneSentinel = "[DONE]"

// StreamCompletions sends msgs as a streaming completion request and
// returns a channel of events, one per decoded text fragment. The
// channel closes when the server closes the connection or when ctx is
// cancelled, both paths release the underlying connection. The call
// fails before yielding anything on a non-200 status, with the raw
// response body in the error.
func (c *Client) StreamCompletions(ctx context.Context, msgs []models.Message, model string) (<-chan models.StreamEvent, error) {
	req, reqID, err := c.createRequest(ctx, msgs, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %v, body: %v", res.Status, string(body))
	}
	return c.handleStreamResponse(ctx, res, reqID, start), nil
}

func (c *Client) createRequest(ctx context.Context, msgs []models.Message, model string) (*http.Request, string, error) {
	reqData := completionRequest{
		Prompt:           prompt.Format(msgs),
		Model:            model,
		Stream:           true,
		TopP:             c.sampling.TopP,
		Temperature:      c.sampling.Temperature,
		Stop:             c.sampling.Stop,
		MaxTokens:        c.sampling.MaxTokens,
		PresencePenalty:  c.sampling.PresencePenalty,
		FrequencyPenalty: c.sampling.FrequencyPenalty,
	}
	reqID := uuid.NewString()
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("completion request '%v': %v\n", reqID, debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("X-Request-Id", reqID)
	return req, reqID, nil
}

// handleStreamResponse reads newline-delimited events off res.Body on a
// goroutine until the connection closes. Cancelling ctx aborts the
// blocked read, since the request carries the same ctx.
func (c *Client) handleStreamResponse(ctx context.Context, res *http.Response, reqID string, start time.Time) <-chan models.StreamEvent {
	out := make(chan models.StreamEvent)
	go func() {
		defer func() {
			res.Body.Close()
			close(out)
		}()
		br := bufio.NewReader(res.Body)
		for {
			line, err := br.ReadBytes('\n')
			if ev, ok := c.decodeChunk(line, reqID); ok {
				ev.Elapsed = time.Since(start)
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				// Connection closed, the stream is exhausted
				return
			}
		}
	}()
	return out
}

// decodeChunk turns one line of the stream into an event. Empty lines,
// the end-of-stream sentinel, unparseable payloads and chunks without
// text all report ok == false, the stream carries on past them.
func (c *Client) decodeChunk(line []byte, reqID string) (models.StreamEvent, bool) {
	line = bytes.TrimSpace(bytes.TrimPrefix(line, dataPrefix))
	if len(line) == 0 || string(line) == doneSentinel {
		return models.StreamEvent{}, false
	}
	var chunk completionChunk
	if err := json.Unmarshal(line, &chunk); err != nil {
		if c.debug {
			// Expect some failing unmarshalls on partial chunks
			ancli.Warnf("request '%v': failed to unmarshal chunk: %v\n", reqID, err)
		}
		return models.StreamEvent{}, false
	}
	if len(chunk.Choices) == 0 || chunk.Choices[0].Text == "" {
		return models.StreamEvent{}, false
	}
	return models.StreamEvent{Text: chunk.Choices[0].Text}, true
}
