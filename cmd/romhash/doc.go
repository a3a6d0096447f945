// Package main hosts the romhash CLI entrypoint and command graph.
//
// The Cobra-based command tree hashes single ROM files, scans platform
// directories into the catalog, looks ROMs up by hash, and reports
// dependency and catalog health. It centralizes configuration resolution
// and structured logging setup so subcommands can focus on output.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
