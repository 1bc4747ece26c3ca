// Package library persists the catalog of recorded sessions in SQLite and
// manages the on-disk recording files that sit next to it.
//
// The catalog only indexes recordings: each row points at a .trec document in
// the library directory, alongside the metadata the CLI lists and filters by
// (title, duration, frame count, shell, grid size). Imports take a directory
// lock so two trec processes cannot race a file into the library.
//
// Schema changes bump schemaVersion in schema.go; the database is an index
// that can be rebuilt, not an archive.
package library
