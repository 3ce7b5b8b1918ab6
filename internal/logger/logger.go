package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey ctxKey = "requestID"
	playerIDKey  ctxKey = "playerID"
)

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id, true
	}
	return "", false
}

// WithPlayerID returns a new context carrying the acting player's ID so
// every log line for the operation is attributable to one player.
func WithPlayerID(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, playerIDKey, playerID)
}

// PlayerIDFromContext extracts the player ID from the context, if present.
func PlayerIDFromContext(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value(playerIDKey).(string); ok {
		return id, true
	}
	return "", false
}

// FromContext returns a logger that includes request_id and player_id
// attributes when present.
func FromContext(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if id, ok := RequestIDFromContext(ctx); ok {
		log = log.With(AttrKeyRequestID, id)
	}
	if id, ok := PlayerIDFromContext(ctx); ok {
		log = log.With(AttrKeyPlayerID, id)
	}
	return log
}

// Init configures the process-wide default slog logger from cfg.
func Init(cfg Config) {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler.WithAttrs(cfg.BaseAttributes()))
	slog.SetDefault(log)
}
