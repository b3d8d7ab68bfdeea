package advisor

import (
	"context"
	"fmt"
	"time"

	"kairos/internal/advisor/profile"
	"kairos/internal/advisor/provider"
	"kairos/internal/logger"
	"kairos/internal/pkg/circuit"
)

const (
	defaultOverallDeadline = 25 * time.Second
	breakerThreshold       = 3
	breakerCooldown        = 60 * time.Second
)

// Adjuster queries an ordered chain of advisory providers, short-circuiting
// on the first success. Providers are tried strictly in sequence; each call
// carries its own client timeout and the whole chain shares one overall
// deadline so worst-case latency stays bounded.
type Adjuster struct {
	chain    []provider.Provider
	breakers map[string]*circuit.Breaker
	profiles *profile.Registry
	overall  time.Duration
}

func NewAdjuster(chain []provider.Provider, profiles *profile.Registry, overallDeadline time.Duration) *Adjuster {
	if overallDeadline <= 0 {
		overallDeadline = defaultOverallDeadline
	}
	breakers := make(map[string]*circuit.Breaker, len(chain))
	for _, p := range chain {
		breakers[p.ID()] = circuit.NewBreaker("advisor:"+p.ID(), breakerThreshold, breakerCooldown)
	}
	return &Adjuster{
		chain:    chain,
		breakers: breakers,
		profiles: profiles,
		overall:  overallDeadline,
	}
}

// Advise walks the provider chain. On success the response is parsed (with
// the free-text fallback, so a reachable provider always yields advice).
// When every provider fails the deterministic fallback advice is returned
// together with ErrAdvisoryUnavailable; callers treat that as non-fatal.
func (a *Adjuster) Advise(ctx context.Context, in Input) (Advice, error) {
	if len(a.chain) == 0 {
		return Fallback("no advisory providers configured"), ErrAdvisoryUnavailable
	}
	prof := a.profiles.Current()
	userPrompt := buildUserPrompt(in)

	ctx, cancel := context.WithTimeout(ctx, a.overall)
	defer cancel()

	var lastErr error
	for _, p := range a.chain {
		if !p.Enabled() {
			continue
		}
		if err := ctx.Err(); err != nil {
			lastErr = fmt.Errorf("advisory deadline exhausted before %s: %w", p.ID(), err)
			break
		}
		br := a.breakers[p.ID()]
		if br != nil && !br.Allow() {
			logger.Debugf("advisor %s skipped: circuit open", p.ID())
			lastErr = fmt.Errorf("provider %s circuit open", p.ID())
			continue
		}
		raw, err := p.Call(ctx, prof.SystemTemplate, userPrompt)
		if err != nil {
			if br != nil {
				br.RecordFailure()
			}
			logger.Warnf("advisor %s failed: %v", p.ID(), err)
			lastErr = err
			continue
		}
		if br != nil {
			br.RecordSuccess()
		}
		adv := ParseResponse(raw, prof.Schema())
		adv.Source = p.ID()
		logger.Debugf("advisor %s answered kind=%s adjustment=%.3f confidence=%.2f",
			p.ID(), adv.Kind, adv.Adjustment, adv.Confidence)
		return adv, nil
	}

	reason := "advisory providers unavailable; using unadjusted model output"
	if lastErr != nil {
		reason = fmt.Sprintf("%s (last error: %v)", reason, lastErr)
	}
	return Fallback(reason), ErrAdvisoryUnavailable
}
