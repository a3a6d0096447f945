package rahasher

import (
	"regexp"
	"strings"

	"romhash/internal/platform"
)

// successExitCode is the status RAHasher uses to report a computed hash.
const successExitCode = 1

var hashPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Validate classifies a RAHasher outcome. It returns the trimmed hash when the
// tool succeeded and printed exactly 32 lowercase hexadecimal characters, and
// an *Error otherwise.
func Validate(outcome ProcessOutcome, code platform.Code, path string) (string, error) {
	if outcome.ExitCode != successExitCode {
		var stderr *string
		if outcome.StderrCaptured {
			text := string(outcome.Stderr)
			stderr = &text
		}
		return "", &Error{
			Kind:     KindToolExecution,
			Code:     code,
			Path:     path,
			ExitCode: outcome.ExitCode,
			Stderr:   stderr,
		}
	}
	if !outcome.StdoutCaptured {
		return "", &Error{Kind: KindNoOutput, Code: code, Path: path, ExitCode: outcome.ExitCode}
	}
	value := strings.TrimSpace(string(outcome.Stdout))
	if value == "" {
		return "", &Error{Kind: KindEmptyHash, Code: code, Path: path, ExitCode: outcome.ExitCode}
	}
	if !hashPattern.MatchString(value) {
		return "", &Error{Kind: KindInvalidFormat, Code: code, Path: path, ExitCode: outcome.ExitCode, Value: value}
	}
	return value, nil
}

// IsValidHash reports whether value is a well-formed RetroAchievements hash.
func IsValidHash(value string) bool {
	return hashPattern.MatchString(value)
}
