// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// ConversationIDKey is the context key for the conversation being processed
	ConversationIDKey contextKey = "conversation_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id and conversation_id from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = newLogger.WithRequestID(requestID)
	}

	if conversationID, ok := ctx.Value(ConversationIDKey).(string); ok && conversationID != "" {
		newLogger = newLogger.WithConversationID(conversationID)
	}

	return newLogger
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// WithConversationID returns a logger with conversation ID
func (l *Logger) WithConversationID(conversationID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("conversation_id", conversationID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// HTTPError logs an HTTP error
func (l *Logger) HTTPError(method, path string, status int, err error, clientIP string) {
	l.Error("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
		slog.String("client_ip", clientIP),
	)
}

// TurnDecision logs the action the controller chose for a conversation turn.
func (l *Logger) TurnDecision(conversationID, phase, action, field string) {
	l.Info("turn_decision",
		slog.String("conversation_id", conversationID),
		slog.String("phase", phase),
		slog.String("action", action),
		slog.String("field", field),
	)
}

// FieldRejected logs raw input that failed validation and was not stored.
func (l *Logger) FieldRejected(conversationID, field, reason string) {
	l.Warn("field_rejected",
		slog.String("conversation_id", conversationID),
		slog.String("field", field),
		slog.String("reason", reason),
	)
}

// PersistenceError logs a lead-store failure. These are retryable and never
// interrupt the conversation.
func (l *Logger) PersistenceError(operation, conversationID string, err error) {
	l.Error("persistence_error",
		slog.String("operation", operation),
		slog.String("conversation_id", conversationID),
		slog.String("error", err.Error()),
	)
}

// RoutingDecision logs a dealer assignment together with the candidate set
// that was considered, so every assignment is explainable from the log alone.
func (l *Logger) RoutingDecision(leadID, dealerID, assignmentType, reason string, attempt int, candidates []string) {
	l.Info("routing_decision",
		slog.String("lead_id", leadID),
		slog.String("dealer_id", dealerID),
		slog.String("assignment_type", assignmentType),
		slog.String("reason", reason),
		slog.Int("attempt", attempt),
		slog.Any("candidates", candidates),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
