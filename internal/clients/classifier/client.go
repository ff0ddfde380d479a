package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketlens/marketlens/internal/modules/sentiment"
)

// Headlines are classified in small batches with a pause in between so the
// external text-classification service's rate limit is respected.
const (
	batchSize  = 3
	batchPause = 500 * time.Millisecond
)

// Client calls an external text-classification service for headline
// sentiment. A classification failure never fails the caller: failed
// headlines come back as neutral results carrying the error.
type Client struct {
	serviceURL string
	client     *http.Client
	log        zerolog.Logger
}

// NewClient creates a new sentiment classification client
func NewClient(serviceURL string, log zerolog.Logger) *Client {
	return &Client{
		serviceURL: serviceURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log.With().Str("client", "classifier").Logger(),
	}
}

// classifyRequest is the service's request body
type classifyRequest struct {
	Inputs []string `json:"inputs"`
}

// classifyResponse is one classification per input, in input order
type classifyResponse []struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify scores a list of headlines, one result per headline in order.
// Headlines are processed in fixed-size batches with a short delay between
// batches; a failed batch yields neutral results for its headlines rather
// than aborting the rest.
func (c *Client) Classify(ctx context.Context, headlines []string) []sentiment.Result {
	results := make([]sentiment.Result, 0, len(headlines))

	for start := 0; start < len(headlines); start += batchSize {
		end := start + batchSize
		if end > len(headlines) {
			end = len(headlines)
		}

		if start > 0 {
			select {
			case <-time.After(batchPause):
			case <-ctx.Done():
				// Remaining headlines are neutral when the caller gives up
				for range headlines[start:] {
					results = append(results, neutralResult(ctx.Err()))
				}
				return results
			}
		}

		batch := headlines[start:end]
		classified, err := c.classifyBatch(ctx, batch)
		if err != nil {
			c.log.Warn().Err(err).Int("batch_size", len(batch)).Msg("Classification batch failed, counting as neutral")
			for range batch {
				results = append(results, neutralResult(err))
			}
			continue
		}

		results = append(results, classified...)
	}

	return results
}

// classifyBatch sends one batch to the service
func (c *Client) classifyBatch(ctx context.Context, headlines []string) ([]sentiment.Result, error) {
	body, err := json.Marshal(classifyRequest{Inputs: headlines})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classification service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var decoded classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode classification response: %w", err)
	}

	if len(decoded) != len(headlines) {
		return nil, fmt.Errorf("classification count mismatch: sent %d, got %d", len(headlines), len(decoded))
	}

	results := make([]sentiment.Result, len(decoded))
	for i, d := range decoded {
		results[i] = sentiment.Result{
			Label: normalizeLabel(d.Label),
			Score: d.Score,
		}
	}

	return results, nil
}

// normalizeLabel maps service labels onto the canonical three
func normalizeLabel(label string) string {
	switch label {
	case sentiment.LabelPositive, "POSITIVE":
		return sentiment.LabelPositive
	case sentiment.LabelNegative, "NEGATIVE":
		return sentiment.LabelNegative
	default:
		return sentiment.LabelNeutral
	}
}

func neutralResult(err error) sentiment.Result {
	return sentiment.Result{
		Label: sentiment.LabelNeutral,
		Err:   err.Error(),
	}
}
