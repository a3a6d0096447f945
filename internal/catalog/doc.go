// Package catalog persists ROM records and their RetroAchievements hashes in
// SQLite.
//
// The Store manages the database connection, schema initialization, and the
// small set of operations the hashing pipeline needs: registering ROM files,
// recording validated hashes or classified failures, and looking ROMs up by
// path or by hash for identity matching. A hash column only ever holds a value
// that passed RAHasher output validation; failures clear it.
//
// Schema changes bump the version in schema.go; users delete the catalog
// database to adopt the new schema.
package catalog
