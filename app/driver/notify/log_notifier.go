package notify

import (
	"context"
	"log/slog"

	"identity-service/app/domain"
	"identity-service/app/port"
)

// LogNotifier records delivery attempts without revealing the code. It
// stands in for a real SMS or email gateway; the code itself is handed
// to no transport and therefore cannot leak through logs.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that only records delivery events.
func NewLogNotifier(logger *slog.Logger) port.OtpNotifier {
	return &LogNotifier{
		logger: logger.With("component", "otp_notifier"),
	}
}

// Deliver records that a code was issued for the user's delivery
// identifier. The plaintext code is deliberately not logged.
func (n *LogNotifier) Deliver(ctx context.Context, user *domain.User, code string) error {
	n.logger.Info("one-time code dispatched",
		"user_id", user.ID,
		"identifier", user.DeliveryIdentifier(),
		"code_length", len(code))
	return nil
}
