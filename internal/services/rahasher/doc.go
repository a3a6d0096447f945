// Package rahasher computes RetroAchievements hashes by running the external
// RAHasher tool.
//
// A Client resolves the platform slug to the numeric platform code RAHasher
// expects, runs the tool as a child process with the code and file path as
// discrete arguments, and validates the captured output before a hash is
// returned. RAHasher reports success with exit status 1; any other status is a
// failure and its stderr is surfaced verbatim. A value is only ever returned
// when it is exactly 32 lowercase hexadecimal characters.
//
// Every failure is an *Error carrying a Kind and tagged with one of the
// services markers, so callers can branch with errors.Is or errors.As.
// Process execution sits behind the Runner interface so tests can script
// outcomes without spawning RAHasher.
package rahasher
