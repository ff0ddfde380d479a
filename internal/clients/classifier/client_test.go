package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marketlens/marketlens/internal/modules/sentiment"
)

func TestClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		out := make([]map[string]interface{}, len(req.Inputs))
		for i := range req.Inputs {
			out[i] = map[string]interface{}{"label": "POSITIVE", "score": 0.92}
		}
		json.NewEncoder(w).Encode(out)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())

	headlines := []string{"Stock soars", "Earnings beat", "Guidance raised", "Buyback announced"}
	results := client.Classify(context.Background(), headlines)

	if len(results) != len(headlines) {
		t.Fatalf("got %d results, want %d", len(results), len(headlines))
	}
	for i, r := range results {
		if r.Label != sentiment.LabelPositive {
			t.Errorf("result %d label = %q, want positive", i, r.Label)
		}
		if r.Err != "" {
			t.Errorf("result %d unexpectedly errored: %s", i, r.Err)
		}
	}
}

func TestClassifyFailedBatchIsNeutral(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())

	results := client.Classify(context.Background(), []string{"Headline one", "Headline two"})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, r := range results {
		if r.Label != sentiment.LabelNeutral {
			t.Errorf("result %d label = %q, want neutral", i, r.Label)
		}
		if r.Err == "" {
			t.Errorf("result %d should carry the batch error", i)
		}
	}
}

func TestClassifyCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// One result for two inputs
		w.Write([]byte(`[{"label":"POSITIVE","score":0.9}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())

	results := client.Classify(context.Background(), []string{"One", "Two"})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Label != sentiment.LabelNeutral || r.Err == "" {
			t.Errorf("mismatched batch should yield errored neutral results, got %+v", r)
		}
	}
}

func TestClassifyCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"POSITIVE","score":0.9},{"label":"POSITIVE","score":0.9},{"label":"POSITIVE","score":0.9}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())

	// Five headlines span two batches; cancel before the inter-batch pause
	headlines := []string{"a", "b", "c", "d", "e"}
	cancel()
	results := client.Classify(ctx, headlines)

	if len(results) != len(headlines) {
		t.Fatalf("got %d results, want %d even after cancellation", len(results), len(headlines))
	}

	// The second batch never ran
	for _, r := range results[3:] {
		if r.Label != sentiment.LabelNeutral || r.Err == "" {
			t.Errorf("post-cancel result should be errored neutral, got %+v", r)
		}
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"POSITIVE", sentiment.LabelPositive},
		{"positive", sentiment.LabelPositive},
		{"NEGATIVE", sentiment.LabelNegative},
		{"negative", sentiment.LabelNegative},
		{"NEUTRAL", sentiment.LabelNeutral},
		{"neutral", sentiment.LabelNeutral},
		{"LABEL_1", sentiment.LabelNeutral},
		{"", sentiment.LabelNeutral},
	}

	for _, tt := range tests {
		if got := normalizeLabel(tt.in); got != tt.want {
			t.Errorf("normalizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
