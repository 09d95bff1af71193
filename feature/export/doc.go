// Package export writes JSON snapshots of an owner's library to object storage.
//
// Snapshots are stored as <prefix>/<owner id>/<uuid>.json. Concurrent exports
// for the same owner share one in-flight snapshot.
//
//   - POST   /export        : write a new snapshot
//   - GET    /export        : list the owner's snapshots
//   - GET    /export/:name  : download a snapshot
//   - DELETE /export/:name  : remove a snapshot
package export
