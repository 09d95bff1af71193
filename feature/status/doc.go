// Package status manages the reading-status history of books.
//
// A book's current_status and current_status_date cache the surviving event with
// the latest date (ties go to the highest id). Creating an event and deleting one
// both recompute the cache; when the last event is deleted the cache is left as is.
//
//   - GET    /status/:bookID  : history of a book, newest first
//   - POST   /status/:bookID  : append an event
//   - DELETE /status/:id      : delete an event and recompute the current status
package status
