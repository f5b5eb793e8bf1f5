package email

import (
	"context"
	"log/slog"
)

// logSender records deliveries instead of performing them. It validates
// exactly like the real sender so development catches the same mistakes.
type logSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs. A nil logger falls back to
// slog.Default.
func NewLogSender(logger *slog.Logger) Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &logSender{logger: logger}
}

// NewSender picks the Postmark sender when credentials are configured, the
// log-only sender otherwise.
func NewSender(cfg Config, logger *slog.Logger) (Sender, error) {
	if cfg.configured() {
		return NewPostmarkSender(cfg)
	}
	return NewLogSender(logger), nil
}

func (s *logSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.logger.Info("email delivery skipped, postmark not configured",
		"to", msg.To,
		"subject", msg.Subject,
		"attachment", msg.AttachmentName,
		"attachment_bytes", len(msg.Attachment),
	)
	return nil
}
