package observability

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const maxLoggerFieldCapacity = 4

//nolint:gochecknoglobals // process-wide base logger
var (
	globalLogger *zap.Logger
	loggerMu     sync.RWMutex
)

// InitLogger builds the base logger once at startup. Development mode gets the
// console encoder, everything else the JSON production encoder.
func InitLogger(dev bool) (*zap.Logger, error) {
	build := zap.NewProduction
	if dev {
		build = zap.NewDevelopment
	}

	logger, err := build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	SetLogger(logger)
	return logger, nil
}

// SetLogger replaces the base logger. Tests use it with zap.NewNop or zaptest.
func SetLogger(logger *zap.Logger) {
	loggerMu.Lock()
	globalLogger = logger
	loggerMu.Unlock()
}

func getBaseLogger() *zap.Logger {
	loggerMu.RLock()
	logger := globalLogger
	loggerMu.RUnlock()

	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// FromContext returns the base logger enriched with the ids carried by ctx.
func FromContext(ctx context.Context) *zap.Logger {
	logger := getBaseLogger()

	fields := make([]zap.Field, 0, maxLoggerFieldCapacity)
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	if spanID := GetSpanID(ctx); spanID != "" {
		fields = append(fields, zap.String("span_id", spanID))
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if source := GetCatalogSource(ctx); source != "" {
		fields = append(fields, zap.String("catalog_source", source))
	}

	return logger.With(fields...)
}

// GooseLogger adapts the base logger to goose's Printf/Fatalf logger.
type GooseLogger struct {
	sugar *zap.SugaredLogger
}

// NewGooseLogger wraps logger for migration output.
func NewGooseLogger(logger *zap.Logger) *GooseLogger {
	return &GooseLogger{sugar: logger.Named("goose").Sugar()}
}

func (l *GooseLogger) Printf(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *GooseLogger) Fatalf(format string, v ...interface{}) {
	l.sugar.Fatalf(format, v...)
}
