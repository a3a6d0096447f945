// Package scan hashes ROM directories in bulk and records the results in the
// catalog.
//
// Scan walks one platform directory, while ScanLibrary treats each immediate
// subdirectory of a library root as a platform slug. Files are hashed with a
// bounded number of concurrent RAHasher processes, validated hashes are
// stored, and failures are recorded with their classified status so lookups
// never see an unvalidated value. A file lock next to the catalog keeps two
// scans from writing the same catalog at once.
package scan
