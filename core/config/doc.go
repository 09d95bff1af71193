// Package config loads booktracker's settings from the environment.
//
// Each subsystem owns its section type (server.Config, database.Config,
// storage.Config, logger.Config) and declares defaults with a `default`
// struct tag; this package only stitches them together, registers the
// defaults with viper and overlays an optional .env file.
//
// A local setup needs nothing beyond
//
//	DATABASE_DRIVER=sqlite
//	DATABASE_NAME=books.db
//
// while production usually sets the DATABASE_* MySQL settings plus
// STORAGE_ENDPOINT and the access keys to enable exports.
package config
