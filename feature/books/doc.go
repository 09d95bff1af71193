// Package books implements the book feature: listing, creation, deletion, rating
// and the partial update of a book together with its authors and tags.
//
// # Update
//
// UpdateBook loads the owner's book, reconciles its author names and tag names
// against the submitted lists with core/reconcile, merges the scalar fields of
// the Patch and saves everything in one transaction. The returned View lists
// authors and tags newest first.
//
// # HTTP Endpoints
//
//   - GET    /books             : list the owner's books
//   - POST   /books             : create a book (title and authors required)
//   - GET    /books/:id         : get one book
//   - PUT    /books/:id         : partial update
//   - DELETE /books/:id         : delete a book with its authors, tags and status history
//   - PUT    /books/:id/rating  : set the rating (0 = unrated, 1-5)
package books
