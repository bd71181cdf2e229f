// Package poller implements the storefront-side payment status poll: query
// the status endpoint on a fixed interval until the payment confirms, is
// rejected, or the attempt budget runs out.
package poller

import (
	"context"
	"time"

	ordermodel "checkout-backend/internal/domains/order/model"
)

// StatusSource answers "what is the status of this payment right now".
type StatusSource interface {
	Status(ctx context.Context, paymentID string) (string, error)
}

// Outcome is the terminal result of a poll run.
type Outcome string

const (
	OutcomeConfirmed Outcome = "CONFIRMED"
	OutcomeRejected  Outcome = "REJECTED"
	OutcomeTimedOut  Outcome = "TIMED_OUT"
)

// Result reports how a poll run ended.
type Result struct {
	Outcome  Outcome
	Status   string // last raw status observed, empty if every query failed
	Attempts int
}

// Callbacks fire at most once per run, on the polling goroutine.
type Callbacks struct {
	OnConfirmed func(status string)
	OnRejected  func(status string)
	OnTimeout   func()
}

// Poller drives the polling loop. Safe for concurrent use; each Poll call is
// an independent run.
type Poller struct {
	source      StatusSource
	interval    time.Duration
	maxAttempts int
}

func New(source StatusSource, interval time.Duration, maxAttempts int) *Poller {
	return &Poller{
		source:      source,
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

// Poll queries the source once per interval until the status resolves to
// CONFIRMED or REJECTED, the attempt budget is spent, or ctx is cancelled.
// Query failures consume an attempt like any other non-terminal answer, so a
// dead backend cannot keep a run alive forever. On cancellation Poll returns
// ctx.Err() and fires no callback.
func (p *Poller) Poll(ctx context.Context, paymentID string, cb Callbacks) (Result, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var lastStatus string
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return Result{Outcome: OutcomeTimedOut, Status: lastStatus, Attempts: attempt - 1}, ctx.Err()
		case <-ticker.C:
		}

		status, err := p.source.Status(ctx, paymentID)
		if err != nil {
			if ctx.Err() != nil {
				return Result{Outcome: OutcomeTimedOut, Status: lastStatus, Attempts: attempt}, ctx.Err()
			}
			continue
		}
		lastStatus = status

		switch ordermodel.ResolveStatus(status) {
		case ordermodel.ResolvedConfirmed:
			if cb.OnConfirmed != nil {
				cb.OnConfirmed(status)
			}
			return Result{Outcome: OutcomeConfirmed, Status: status, Attempts: attempt}, nil
		case ordermodel.ResolvedRejected:
			if cb.OnRejected != nil {
				cb.OnRejected(status)
			}
			return Result{Outcome: OutcomeRejected, Status: status, Attempts: attempt}, nil
		}
	}

	if cb.OnTimeout != nil {
		cb.OnTimeout()
	}
	return Result{Outcome: OutcomeTimedOut, Status: lastStatus, Attempts: p.maxAttempts}, nil
}
