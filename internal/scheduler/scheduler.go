// Package scheduler implements the Source Scheduler: one instance per
// provider, composing that provider's Rate Governor, Circuit Breaker,
// and a bounded-retry-with-jitter loop into a single never-raise
// execute(query) -> QueryResult call.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/AIDMI-DataHub/heatscan/internal/breaker"
	"github.com/AIDMI-DataHub/heatscan/internal/provider"
	"github.com/AIDMI-DataHub/heatscan/internal/ratelimit"
	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// Config tunes one Scheduler's retry policy.
type Config struct {
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// Scheduler wraps a single Provider with its Governor and Breaker,
// presenting the never-raise Execute contract: every call returns a
// terminal types.QueryResult, never an error, never a panic.
type Scheduler struct {
	provider provider.Provider
	governor *ratelimit.Governor
	breaker  *breaker.Breaker
	cfg      Config
	logger   *slog.Logger
}

// New builds a Scheduler for p.
func New(p provider.Provider, governor *ratelimit.Governor, brk *breaker.Breaker, cfg Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		provider: p,
		governor: governor,
		breaker:  brk,
		cfg:      cfg,
		logger:   logger.With("component", "scheduler", "provider", p.Name()),
	}
}

// Execute runs q against the wrapped provider to completion, applying
// the ordering: language check -> breaker check -> governor acquire ->
// provider call -> classify -> retry-or-terminate. It never returns an
// error and never panics — every outcome, including context
// cancellation, becomes a terminal QueryResult.
func (s *Scheduler) Execute(ctx context.Context, q types.Query) (result types.QueryResult) {
	result = types.QueryResult{Query: q, ProviderName: s.provider.Name()}
	defer func() {
		if r := recover(); r != nil {
			result.Outcome = types.OutcomeFailedPermanent
			result.ErrorDetail = "recovered from panic in provider adapter"
			s.logger.Error("provider adapter panicked", "recover", r)
		}
	}()

	if !s.provider.SupportsLanguage(q.Language) {
		result.Outcome = types.OutcomeSkippedLanguage
		return result
	}

	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			result.Outcome = types.OutcomeFailedTransient
			result.ErrorDetail = ctx.Err().Error()
			return result
		}

		if err := s.breaker.Allow(); err != nil {
			result.Outcome = types.OutcomeSkippedBreakerOpen
			return result
		}

		if err := s.governor.Acquire(ctx); err != nil {
			if errors.Is(err, types.ErrBudgetExhausted) {
				result.Outcome = types.OutcomeSkippedBudget
				return result
			}
			result.Outcome = types.OutcomeFailedTransient
			result.ErrorDetail = err.Error()
			return result
		}

		articles, err := s.provider.Search(ctx, q)
		if attempt == 0 {
			s.governor.CreditDispatch()
		}

		if err == nil {
			s.breaker.RecordSuccess()
			result.Articles = articles
			result.Outcome = types.OutcomeOK
			return result
		}

		lastErr = err

		var provErr *types.ProviderError
		retryable := errors.As(err, &provErr) && provErr.IsRetryable()
		if retryable {
			s.breaker.RecordFailure()
		}
		if !retryable || attempt == s.cfg.MaxRetries {
			break
		}

		delay := s.backoff(attempt, provErr)
		s.logger.Warn("retrying provider search", "attempt", attempt+1, "delay", delay, "error", err)
		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			result.Outcome = types.OutcomeFailedTransient
			result.ErrorDetail = ctx.Err().Error()
			return result
		}
	}

	var provErr *types.ProviderError
	if errors.As(lastErr, &provErr) && provErr.IsRetryable() {
		result.Outcome = types.OutcomeFailedTransient
	} else {
		result.Outcome = types.OutcomeFailedPermanent
	}
	if lastErr != nil {
		result.ErrorDetail = lastErr.Error()
	}
	return result
}

// backoff computes the delay before the next retry: the provider's
// Retry-After hint if present, else an exponential base with full
// jitter.
func (s *Scheduler) backoff(attempt int, provErr *types.ProviderError) time.Duration {
	if provErr != nil && provErr.RetryAfterSeconds > 0 {
		return time.Duration(provErr.RetryAfterSeconds) * time.Second
	}
	base := s.cfg.RetryBaseDelay
	if base <= 0 {
		base = time.Second
	}
	mult := time.Duration(1 << attempt)
	full := base * mult
	return time.Duration(rand.Float64() * float64(full))
}
