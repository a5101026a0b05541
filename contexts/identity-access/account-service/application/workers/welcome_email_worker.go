package workers

import (
	"context"
	"log/slog"
	"time"

	application "noteboard/contexts/identity-access/account-service/application"
	"noteboard/contexts/identity-access/account-service/ports"
)

// WelcomeEmailWorker consumes registration events and delivers the welcome
// email with an artificial initial delay and a bounded number of attempts.
// Exhausted retries are logged and dropped; nothing propagates upstream.
type WelcomeEmailWorker struct {
	Source        ports.EventSource
	Sender        ports.EmailSender
	InitialDelay  time.Duration
	RetryBackoff  time.Duration
	MaxAttempts   int
	ConsumerGroup string
	Logger        *slog.Logger
}

func (w WelcomeEmailWorker) Run(ctx context.Context) error {
	group := w.ConsumerGroup
	if group == "" {
		group = "account-welcome-email-cg"
	}
	return w.Source.SubscribeWelcome(ctx, group, w.handle)
}

func (w WelcomeEmailWorker) handle(ctx context.Context, event ports.WelcomeEvent) error {
	logger := application.ResolveLogger(w.Logger)

	if w.InitialDelay > 0 {
		if err := sleep(ctx, w.InitialDelay); err != nil {
			return err
		}
	}

	attempts := w.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	backoff := w.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = w.Sender.SendWelcome(ctx, event.Name, event.Email)
		if lastErr == nil {
			logger.Info("welcome email sent",
				"event", "welcome_email_sent",
				"module", "identity-access/account-service",
				"layer", "worker",
				"email", event.Email,
				"attempt", attempt,
			)
			return nil
		}
		logger.Warn("welcome email attempt failed",
			"event", "welcome_email_attempt_failed",
			"module", "identity-access/account-service",
			"layer", "worker",
			"email", event.Email,
			"attempt", attempt,
			"error", lastErr.Error(),
		)
		if attempt < attempts {
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
		}
	}

	logger.Error("welcome email dropped after retries",
		"event", "welcome_email_dropped",
		"module", "identity-access/account-service",
		"layer", "worker",
		"email", event.Email,
		"attempts", attempts,
		"error", lastErr.Error(),
	)
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
