package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"noteboard/contexts/identity-access/account-service/ports"
)

// directSource invokes the handler synchronously for every queued event.
type directSource struct {
	events []ports.WelcomeEvent
}

func (s directSource) SubscribeWelcome(
	ctx context.Context,
	_ string,
	handler func(context.Context, ports.WelcomeEvent) error,
) error {
	for _, event := range s.events {
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

type flakySender struct {
	failures int
	calls    int
}

func (s *flakySender) SendWelcome(_ context.Context, _ string, _ string) error {
	s.calls++
	if s.calls <= s.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func TestWorkerRetriesUntilSuccess(t *testing.T) {
	sender := &flakySender{failures: 2}
	worker := WelcomeEmailWorker{
		Source:       directSource{events: []ports.WelcomeEvent{{Name: "A", Email: "a@x.com"}}},
		Sender:       sender,
		RetryBackoff: time.Millisecond,
		MaxAttempts:  3,
	}

	if err := worker.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if sender.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", sender.calls)
	}
}

func TestWorkerDropsAfterExhaustedRetries(t *testing.T) {
	sender := &flakySender{failures: 10}
	worker := WelcomeEmailWorker{
		Source:       directSource{events: []ports.WelcomeEvent{{Name: "A", Email: "a@x.com"}}},
		Sender:       sender,
		RetryBackoff: time.Millisecond,
		MaxAttempts:  3,
	}

	// Exhausted retries are swallowed; the queue must not see an error.
	if err := worker.Run(context.Background()); err != nil {
		t.Fatalf("expected dropped job, got error: %v", err)
	}
	if sender.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", sender.calls)
	}
}

func TestWorkerHonorsContextDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := &flakySender{}
	worker := WelcomeEmailWorker{
		Source:       directSource{events: []ports.WelcomeEvent{{Name: "A", Email: "a@x.com"}}},
		Sender:       sender,
		InitialDelay: time.Minute,
	}

	if err := worker.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no send attempts, got %d", sender.calls)
	}
}
