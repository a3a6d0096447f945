package services

import "context"

type contextKey string

const (
	romIDKey     contextKey = "rom_id"
	platformKey  contextKey = "platform"
	romPathKey   contextKey = "rom_path"
	requestIDKey contextKey = "request_id"
)

// WithROMID annotates context with the catalog ROM identifier.
func WithROMID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, romIDKey, id)
}

// ROMIDFromContext extracts the catalog ROM identifier if present.
func ROMIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(romIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithPlatform annotates context with the platform slug being hashed.
func WithPlatform(ctx context.Context, slug string) context.Context {
	if slug == "" {
		return ctx
	}
	return context.WithValue(ctx, platformKey, slug)
}

// PlatformFromContext returns the platform slug if present.
func PlatformFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(platformKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithROMPath annotates context with the ROM file path being hashed.
func WithROMPath(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, romPathKey, path)
}

// ROMPathFromContext returns the ROM file path if present.
func ROMPathFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(romPathKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
