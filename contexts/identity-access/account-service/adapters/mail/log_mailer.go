package mail

import (
	"context"
	"log/slog"
)

// LogMailer "delivers" welcome emails by writing a structured log line.
// Real delivery is out of scope; this keeps the pipeline observable end to end.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) SendWelcome(_ context.Context, name string, email string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("welcome email delivered",
		"event", "welcome_email_delivered",
		"module", "identity-access/account-service",
		"layer", "adapter",
		"name", name,
		"email", email,
		"subject", "Welcome to Noteboard!",
	)
	return nil
}
