// Package integrity provides health checks for the database and object storage.
//
// # Checks Provided
//
//   - Schema: Verifies that every table of the data model exists with all of its columns.
//   - Storage: Verifies that the export bucket exists and counts stored snapshots.
//   - Library: Finds authors, tags and status events whose book is gone, books pointing
//     at a deleted series, and books whose cached current status disagrees with their history.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs schema check (supports ?fix=true, which migrates).
//   - GET /integrity/storage : Runs storage check (supports ?fix=true, which creates the bucket).
//   - GET /integrity/library : Runs library check for the caller (supports ?fix=true).
package integrity
