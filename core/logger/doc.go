// Package logger builds the zap logger shared by the server and the CLI.
//
// Log lines carry two correlation fields when available: ray_id, copied
// from the request locals by WithRayID, and owner_id, added by WithOwner
// once the auth middleware has resolved the caller. Services log their
// mutations with both so a single book update can be traced from the
// request line to the reconciled author and tag rows.
//
//	log, err := logger.New(&logger.Config{Level: "info", Format: "json"})
//	...
//	logger.WithOwner(logger.WithRayID(log, c), owner).Info("book updated")
package logger
