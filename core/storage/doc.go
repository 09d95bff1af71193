// Package storage connects booktracker to the S3-compatible bucket that
// receives library exports.
//
// Client narrows minio-go to the six calls the export and integrity
// features make, which keeps the testify mock in core/storage/mocks small.
// EnsureBucket is the only helper with behaviour of its own and is run
// by the CLI before the first export.
package storage
