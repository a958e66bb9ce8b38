package observability

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

type contextKey string

const (
	traceIDBytes = 16
	spanIDBytes  = 8
)

const (
	// TraceIDKey holds the trace ID.
	TraceIDKey contextKey = "trace_id"

	// SpanIDKey holds the span ID.
	SpanIDKey contextKey = "span_id"

	// RequestIDKey holds the unique request identifier.
	RequestIDKey contextKey = "request_id"

	// CatalogSourceKey holds the name of the catalog serving this request.
	CatalogSourceKey contextKey = "catalog_source"
)

// WithTraceID injects trace ID into context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// WithSpanID injects span ID into context.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, SpanIDKey, spanID)
}

// WithRequestID injects request ID into context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithCatalogSource injects the catalog source name into context.
func WithCatalogSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, CatalogSourceKey, source)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// GetTraceID extracts trace ID from context.
func GetTraceID(ctx context.Context) string { return stringValue(ctx, TraceIDKey) }

// GetSpanID extracts span ID from context.
func GetSpanID(ctx context.Context) string { return stringValue(ctx, SpanIDKey) }

// GetRequestID extracts request ID from context.
func GetRequestID(ctx context.Context) string { return stringValue(ctx, RequestIDKey) }

// GetCatalogSource extracts the catalog source name from context.
func GetCatalogSource(ctx context.Context) string { return stringValue(ctx, CatalogSourceKey) }

// GenerateTraceID generates a 32 hex char trace ID.
func GenerateTraceID() string {
	bytes := make([]byte, traceIDBytes)
	if _, err := rand.Read(bytes); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(bytes)
}

// GenerateSpanID generates a 16 hex char span ID.
func GenerateSpanID() string {
	bytes := make([]byte, spanIDBytes)
	if _, err := rand.Read(bytes); err != nil {
		return uuid.New().String()[:16]
	}
	return hex.EncodeToString(bytes)
}

// GenerateRequestID generates a unique request identifier (UUID).
func GenerateRequestID() string {
	return uuid.New().String()
}
