package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/marketlens/marketlens/internal/clients/finnhub"
	"github.com/marketlens/marketlens/internal/modules/dashboard"
)

// symbolPattern matches exchange tickers, including dotted share classes
// like BRK.B and suffixed listings like SAP.DE
var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}(\.[A-Z0-9]{1,4})?$`)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"service": "marketlens",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleGetStock returns the full dashboard payload for a symbol.
// ?news=true adds news and sentiment, ?range=N sets the history window.
func (s *Server) handleGetStock(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.symbolParam(w, r)
	if !ok {
		return
	}

	opts := dashboard.Options{
		IncludeNews: r.URL.Query().Get("news") == "true",
	}
	if rangeDays := r.URL.Query().Get("range"); rangeDays != "" {
		days, err := strconv.Atoi(rangeDays)
		if err != nil || days <= 0 || days > 365 {
			s.writeError(w, http.StatusBadRequest, "range must be a number of days between 1 and 365")
			return
		}
		opts.HistoryDays = days
	}

	dash, err := s.dashboard.GetDashboard(r.Context(), symbol, opts)
	if err != nil {
		s.handleServiceError(w, symbol, err)
		return
	}

	s.writeJSON(w, http.StatusOK, dash)
}

// handleGetQuote returns only the quote for a symbol
func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.symbolParam(w, r)
	if !ok {
		return
	}

	quote, err := s.dashboard.GetQuote(r.Context(), symbol)
	if err != nil {
		s.handleServiceError(w, symbol, err)
		return
	}

	s.writeJSON(w, http.StatusOK, quote)
}

// handleGetHistory returns candles and derived stats for a symbol
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.symbolParam(w, r)
	if !ok {
		return
	}

	days := 0
	if rangeDays := r.URL.Query().Get("range"); rangeDays != "" {
		parsed, err := strconv.Atoi(rangeDays)
		if err != nil || parsed <= 0 || parsed > 365 {
			s.writeError(w, http.StatusBadRequest, "range must be a number of days between 1 and 365")
			return
		}
		days = parsed
	}

	history, err := s.dashboard.GetHistory(r.Context(), symbol, days)
	if err != nil {
		s.handleServiceError(w, symbol, err)
		return
	}

	s.writeJSON(w, http.StatusOK, history)
}

// handleGetNews returns recent news with sentiment for a symbol
func (s *Server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.symbolParam(w, r)
	if !ok {
		return
	}

	items, summary, err := s.dashboard.GetNews(r.Context(), symbol)
	if err != nil {
		s.handleServiceError(w, symbol, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":    symbol,
		"news":      items,
		"sentiment": summary,
	})
}

// handleSearch looks up symbols matching ?q=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	results, err := s.dashboard.Search(r.Context(), query)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("Symbol search failed")
		s.writeError(w, http.StatusBadGateway, "symbol search failed")
		return
	}

	s.writeJSON(w, http.StatusOK, results)
}

// symbolParam extracts and validates the symbol route parameter.
// Symbols are normalized to upper case before validation.
func (s *Server) symbolParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
	if !symbolPattern.MatchString(symbol) {
		s.writeError(w, http.StatusBadRequest, "invalid symbol")
		return "", false
	}
	return symbol, true
}

// handleServiceError maps dashboard service errors onto HTTP statuses
func (s *Server) handleServiceError(w http.ResponseWriter, symbol string, err error) {
	if errors.Is(err, finnhub.ErrNoData) {
		s.writeError(w, http.StatusNotFound, "no data for symbol "+symbol)
		return
	}

	s.log.Error().Err(err).Str("symbol", symbol).Msg("Dashboard request failed")
	s.writeError(w, http.StatusBadGateway, "upstream data provider error")
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
