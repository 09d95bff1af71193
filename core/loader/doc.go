// Package loader registers booktracker's HTTP features on the fiber app.
//
// A feature is a package under feature/ that owns a slice of the URL space
// (/books, /series, /tags, /status, /auth, /export, /integrity) together
// with its service and handler. The start command builds each feature,
// hands it to a Manager and calls LoadAll once the middleware chain is in
// place. A feature that reports IsEnabled() == false is logged and
// skipped; export does this when no storage client could be built.
package loader
