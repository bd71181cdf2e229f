package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource returns canned answers in sequence, repeating the last one.
type scriptedSource struct {
	answers []string
	err     error
	calls   int32
}

func (s *scriptedSource) Status(ctx context.Context, paymentID string) (string, error) {
	n := int(atomic.AddInt32(&s.calls, 1))
	if s.err != nil {
		return "", s.err
	}
	if n > len(s.answers) {
		n = len(s.answers)
	}
	return s.answers[n-1], nil
}

func TestPoll_StopsOnConfirmed(t *testing.T) {
	source := &scriptedSource{answers: []string{"PENDING", "PENDING", "CONFIRMED"}}
	p := New(source, time.Millisecond, 60)

	var confirmed, rejected, timedOut int
	result, err := p.Poll(context.Background(), "pay_1", Callbacks{
		OnConfirmed: func(status string) { confirmed++ },
		OnRejected:  func(status string) { rejected++ },
		OnTimeout:   func() { timedOut++ },
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeConfirmed, result.Outcome)
	assert.Equal(t, "CONFIRMED", result.Status)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, 1, confirmed, "OnConfirmed fires exactly once")
	assert.Zero(t, rejected)
	assert.Zero(t, timedOut)
	assert.EqualValues(t, 3, source.calls, "polling stops after the terminal answer")
}

func TestPoll_StopsOnRejected(t *testing.T) {
	source := &scriptedSource{answers: []string{"PENDING", "recusado"}}
	p := New(source, time.Millisecond, 60)

	var rejectedStatus string
	result, err := p.Poll(context.Background(), "pay_1", Callbacks{
		OnRejected: func(status string) { rejectedStatus = status },
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Equal(t, "recusado", rejectedStatus, "callback receives the raw status")
}

func TestPoll_TimeoutAfterBudget(t *testing.T) {
	source := &scriptedSource{answers: []string{"PENDING"}}
	p := New(source, time.Millisecond, 5)

	var timedOut int
	result, err := p.Poll(context.Background(), "pay_1", Callbacks{
		OnTimeout: func() { timedOut++ },
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeTimedOut, result.Outcome)
	assert.Equal(t, 5, result.Attempts)
	assert.Equal(t, 1, timedOut, "OnTimeout fires exactly once")
	assert.EqualValues(t, 5, source.calls)
}

func TestPoll_QueryErrorsConsumeBudget(t *testing.T) {
	source := &scriptedSource{err: errors.New("backend down")}
	p := New(source, time.Millisecond, 4)

	var timedOut int
	result, err := p.Poll(context.Background(), "pay_1", Callbacks{
		OnTimeout: func() { timedOut++ },
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeTimedOut, result.Outcome)
	assert.Empty(t, result.Status)
	assert.Equal(t, 1, timedOut)
	assert.EqualValues(t, 4, source.calls, "a dead backend cannot extend the run")
}

func TestPoll_CancellationFiresNoCallbacks(t *testing.T) {
	source := &scriptedSource{answers: []string{"PENDING"}}
	p := New(source, 5*time.Millisecond, 60)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(12 * time.Millisecond)
		cancel()
	}()

	var fired int
	_, err := p.Poll(ctx, "pay_1", Callbacks{
		OnConfirmed: func(status string) { fired++ },
		OnRejected:  func(status string) { fired++ },
		OnTimeout:   func() { fired++ },
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fired, "cancellation must not fire any callback")
}

func TestPoll_UnknownVocabularyKeepsPolling(t *testing.T) {
	source := &scriptedSource{answers: []string{"BANANA", "ANALYSIS", "PAGO"}}
	p := New(source, time.Millisecond, 60)

	result, err := p.Poll(context.Background(), "pay_1", Callbacks{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, result.Outcome)
	assert.Equal(t, 3, result.Attempts)
}
