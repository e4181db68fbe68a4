package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-api/internal/core/port"
	"github.com/arklim/social-platform-api/internal/infra/logger"
)

// LoggingMailer records mail dispatch for observability without delivering it.
// Used when SMTP is not configured.
type LoggingMailer struct {
	logger *zap.Logger
}

// NewLoggingMailer constructs a mailer backed by structured logging.
func NewLoggingMailer(log *zap.Logger) *LoggingMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingMailer{logger: log}
}

func (m *LoggingMailer) SendPasswordChanged(_ context.Context, to string) error {
	m.logger.Info("dispatch password changed notice",
		zap.String("to", logger.MaskEmail(to)),
	)
	return nil
}

func (m *LoggingMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.logger.Info("dispatch password reset token",
		zap.String("to", logger.MaskEmail(to)),
		zap.Int("token_length", len(token)),
	)
	return nil
}

var _ port.Mailer = (*LoggingMailer)(nil)
