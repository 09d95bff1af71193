// Package server holds the HTTP server configuration and constants.
//
// While the start command handles the server startup, this package defines the
// configuration structure and valid values for server settings, such as the
// accepted Authorization schemes ("Token <key>" and "Bearer <key>").
package server
