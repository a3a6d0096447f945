// Package platform maps platform slugs to the numeric console IDs expected by
// RAHasher.
//
// The table is fixed at build time and read-only at runtime, so any number of
// goroutines may resolve slugs concurrently. Several slugs intentionally share
// a code (genesis/megadrive, nes/famicom, ngc/ngp/ngpc, wswan/wswanc); keep
// those aliases when editing the table.
//
// Resolve performs an exact, case-sensitive match. Callers normalize user
// input before resolving.
package platform
