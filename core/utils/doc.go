// Package utils provides common utility functions for the booktracker application.
// It includes helpers for converting loosely typed JSON values (numbers sent as
// strings, float64 ids) that don't fit into domain-specific packages.
package utils
