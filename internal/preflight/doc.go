// Package preflight provides readiness checks for the RAHasher executable and
// the filesystem paths romhash depends on.
//
// The CLI "romhash status" command renders every result, and the scan
// commands call RunAll before touching the catalog so a missing binary or an
// unwritable data directory fails fast instead of recording a failure for
// every ROM.
package preflight
