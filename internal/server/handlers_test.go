package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marketlens/marketlens/internal/cache"
	"github.com/marketlens/marketlens/internal/clients/finnhub"
	"github.com/marketlens/marketlens/internal/metrics"
	"github.com/marketlens/marketlens/internal/modules/dashboard"
)

// newTestServer stands up the full router against a stubbed provider
func newTestServer(t *testing.T, providerHandler http.HandlerFunc) *Server {
	t.Helper()

	upstream := httptest.NewServer(providerHandler)
	t.Cleanup(upstream.Close)

	provider := finnhub.NewClient(upstream.URL, "test-key", nil, zerolog.Nop())
	svc := dashboard.NewService(provider, nil, cache.New(), nil, 90, zerolog.Nop())

	return New(Config{
		Port:      0,
		Log:       zerolog.Nop(),
		Dashboard: svc,
		Metrics:   metrics.NewRegistry(),
		DevMode:   true,
	})
}

func stubFinnhub(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/quote":
			w.Write([]byte(`{"c":185.5,"d":2.1,"dp":1.15,"h":186.2,"l":183.1,"o":184.0,"pc":183.4,"t":1700000000}`))
		case "/stock/profile2":
			w.Write([]byte(`{"name":"Apple Inc","ticker":"AAPL","finnhubIndustry":"Technology","marketCapitalization":2800000}`))
		case "/stock/metric":
			w.Write([]byte(`{"symbol":"AAPL","metric":{"peTTM":28.4}}`))
		case "/stock/candle":
			w.Write([]byte(`{"s":"ok","c":[100,101,102],"h":[101,102,103],"l":[99,100,101],"o":[100,101,102],"v":[1,1,1],"t":[1,2,3]}`))
		case "/search":
			w.Write([]byte(`{"count":1,"result":[{"description":"APPLE INC","displaySymbol":"AAPL","symbol":"AAPL","type":"Common Stock"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, stubFinnhub(t))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", body["status"])
	}
}

func TestHandleGetStock(t *testing.T) {
	srv := newTestServer(t, stubFinnhub(t))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stocks/aapl/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	// Symbol is normalized to upper case
	if body["symbol"] != "AAPL" {
		t.Errorf("symbol = %v, want AAPL", body["symbol"])
	}
	if _, ok := body["analysis"]; !ok {
		t.Error("payload missing analysis section")
	}
	if _, ok := body["fundamental"]; !ok {
		t.Error("payload missing fundamental section")
	}
	// News was not requested
	if _, ok := body["news"]; ok {
		t.Error("news should be omitted without ?news=true")
	}
}

func TestHandleGetStockInvalidSymbol(t *testing.T) {
	srv := newTestServer(t, stubFinnhub(t))

	tests := []string{
		"/api/stocks/not%20a%20symbol/",
		"/api/stocks/waytoolongsymbolname/",
		"/api/stocks/AAPL;DROP/",
	}

	for _, path := range tests {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, rec.Code)
		}
	}
}

func TestHandleGetStockUnknownSymbol(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c":0,"d":0,"dp":0,"h":0,"l":0,"o":0,"pc":0,"t":0}`))
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stocks/NOPE/", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleGetStockBadRange(t *testing.T) {
	srv := newTestServer(t, stubFinnhub(t))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stocks/AAPL/?range=eleventy", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleGetQuote(t *testing.T) {
	srv := newTestServer(t, stubFinnhub(t))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stocks/AAPL/quote", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var quote finnhub.Quote
	if err := json.NewDecoder(rec.Body).Decode(&quote); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if quote.Current != 185.5 {
		t.Errorf("current = %v, want 185.5", quote.Current)
	}
}

func TestHandleSearch(t *testing.T) {
	srv := newTestServer(t, stubFinnhub(t))

	t.Run("Missing query", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("Valid query", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=apple", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp finnhub.SearchResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.Count != 1 {
			t.Errorf("count = %d, want 1", resp.Count)
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, stubFinnhub(t))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
