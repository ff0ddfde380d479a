package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketlens/marketlens/internal/clients/finnhub"
)

// healthProbeTimeout bounds one probe round-trip
const healthProbeTimeout = 10 * time.Second

// ProviderHealthJob periodically probes the market-data provider with a
// canary quote so connectivity or credential problems surface in the logs
// before a user request hits them.
type ProviderHealthJob struct {
	provider *finnhub.Client
	symbol   string
	log      zerolog.Logger
}

// NewProviderHealthJob creates a provider health probe for the given
// canary symbol
func NewProviderHealthJob(provider *finnhub.Client, symbol string, log zerolog.Logger) *ProviderHealthJob {
	return &ProviderHealthJob{
		provider: provider,
		symbol:   symbol,
		log:      log.With().Str("job", "provider_health").Logger(),
	}
}

// Name returns the job name
func (j *ProviderHealthJob) Name() string {
	return "provider_health"
}

// Run fetches the canary quote and logs the outcome
func (j *ProviderHealthJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
	defer cancel()

	start := time.Now()
	_, err := j.provider.GetQuote(ctx, j.symbol)
	if err != nil {
		j.log.Warn().
			Err(err).
			Str("symbol", j.symbol).
			Msg("Provider health probe failed")
		return err
	}

	j.log.Debug().
		Str("symbol", j.symbol).
		Dur("duration_ms", time.Since(start)).
		Msg("Provider health probe ok")

	return nil
}
