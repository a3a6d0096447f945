package services_test

import (
	"errors"
	"strings"
	"testing"

	"romhash/internal/catalog"
	"romhash/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "rahasher", "run", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"rahasher", "run", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestFailureStatusMapping(t *testing.T) {
	configErr := services.Wrap(services.ErrConfiguration, "platform", "resolve", "unsupported", nil)
	if status := services.FailureStatus(configErr); status != catalog.HashStatusUnsupported {
		t.Fatalf("expected unsupported for configuration error, got %s", status)
	}

	toolErr := services.Wrap(services.ErrExternalTool, "rahasher", "run", "exit 2", errors.New("crash"))
	if status := services.FailureStatus(toolErr); status != catalog.HashStatusFailed {
		t.Fatalf("expected failed for tool error, got %s", status)
	}

	if status := services.FailureStatus(nil); status != catalog.HashStatusFailed {
		t.Fatalf("expected failed for nil error, got %s", status)
	}
}
