package impl

import (
	"context"
	"log/slog"
)

// LogEmailSender stands in where no mail provider is wired. It never
// logs the code itself.
type LogEmailSender struct {
	Logger *slog.Logger
}

func (s LogEmailSender) SendOTP(ctx context.Context, to, code string) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "otp issued, delivery not configured", "to", to)
	return nil
}
