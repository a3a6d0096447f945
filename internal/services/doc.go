// Package services defines shared utilities consumed by the hashing client,
// the batch scanner, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp catalog ROM IDs, platform slugs, file paths,
//     and correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent catalog hash statuses (failed vs unsupported).
//
// External tool integrations live in subpackages (see services/rahasher).
package services
