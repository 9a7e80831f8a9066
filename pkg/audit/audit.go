package audit

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType classifies an auditable event
type EventType string

const (
	EventLoginSuccess   EventType = "login_success"
	EventLoginFailed    EventType = "login_failed"
	EventLoginBlocked   EventType = "login_blocked"
	EventAccountBlocked EventType = "account_blocked"
	EventAccountUnblock EventType = "account_unblocked"
	EventAccountDeleted EventType = "account_deleted"
	EventOfferDeleted   EventType = "offer_deleted"
	EventOfferDisabled  EventType = "offer_disabled"
)

// Logger writes a structured audit trail for security-relevant actions:
// authentication outcomes and admin moderation. Separate from the request
// logger so the trail can be shipped to its own sink.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

func Init(serviceName, environment string) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}, nil
}

// Event records a single audit event. actorID may be zero when the actor is
// unauthenticated (failed logins).
func (l *Logger) Event(event EventType, actorID int64, fields ...zap.Field) {
	if l == nil || l.zapLogger == nil {
		return
	}
	base := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event)),
	}
	if actorID != 0 {
		base = append(base, zap.Int64("actor_id", actorID))
	}
	l.zapLogger.Info("audit", append(base, fields...)...)
}

func (l *Logger) Sync() {
	if l != nil && l.zapLogger != nil {
		_ = l.zapLogger.Sync()
	}
}
