package rahasher_test

import (
	"strings"
	"testing"

	"romhash/internal/services/rahasher"
)

func TestValidateIsPure(t *testing.T) {
	outcome := succeeded(validHash + "\r\n")
	for i := 0; i < 3; i++ {
		hash, err := rahasher.Validate(outcome, 5, "/roms/game.gba")
		if err != nil || hash != validHash {
			t.Fatalf("iteration %d: got %q, %v", i, hash, err)
		}
	}
	if string(outcome.Stdout) != validHash+"\r\n" {
		t.Fatal("Validate mutated its input")
	}
}

func TestValidateExitCodeCheckedFirst(t *testing.T) {
	// A failing exit status wins even when stdout is missing.
	_, err := rahasher.Validate(rahasher.ProcessOutcome{ExitCode: 255}, 5, "/roms/game.gba")
	requireKind(t, err, rahasher.KindToolExecution)
}

func TestValidateInvalidFormatKeepsValue(t *testing.T) {
	_, err := rahasher.Validate(succeeded("  deadbeef \n"), 12, "/roms/game.cue")
	hashErr := requireKind(t, err, rahasher.KindInvalidFormat)
	if hashErr.Value != "deadbeef" || hashErr.Code != 12 || hashErr.Path != "/roms/game.cue" {
		t.Fatalf("unexpected error fields: %#v", hashErr)
	}
}

func TestRequestArgsOrder(t *testing.T) {
	args := rahasher.Request{Code: 53, Path: "/roms/a b;rm -rf.ws"}.Args()
	if len(args) != 2 || args[0] != "53" || args[1] != "/roms/a b;rm -rf.ws" {
		t.Fatalf("unexpected args %q", args)
	}
}

func TestIsValidHash(t *testing.T) {
	if !rahasher.IsValidHash(validHash) {
		t.Fatal("expected valid hash to pass")
	}
	for _, value := range []string{"", validHash + "\n", strings.ToUpper(validHash), validHash[:30]} {
		if rahasher.IsValidHash(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}
