// Package models declares the GORM models shared by all booktracker features.
//
// Every child row (Author, Tag, StatusEvent) carries the owning UserID of its
// parent Book and every query filters on it. No ORM associations or hooks are
// declared: cascades are explicit transactions in the feature services.
package models
