package logging

import (
	"context"
	"log/slog"

	"romhash/internal/services"
)

// ContextFields returns the ROM and correlation attributes stored on ctx.
func ContextFields(ctx context.Context) []Attr {
	if ctx == nil {
		return nil
	}
	var fields []Attr
	if id, ok := services.ROMIDFromContext(ctx); ok {
		fields = append(fields, slog.Int64(FieldROMID, id))
	}
	if slug, ok := services.PlatformFromContext(ctx); ok {
		fields = append(fields, String(FieldPlatform, slug))
	}
	if path, ok := services.ROMPathFromContext(ctx); ok {
		fields = append(fields, String(FieldROMPath, path))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns logger with ContextFields(ctx) attached.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
