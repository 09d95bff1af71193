// Package tags works on tag names across all of an owner's books.
//
// A tag name is stored as one row per book. RenameTag moves a name to a target
// set of books by reconciling the matching rows, keyed by book id, against the
// requested ids: rows on targeted books are renamed in place, untargeted rows are
// deleted and targeted books without a row get a new one. An empty target list
// deletes the tag everywhere.
//
//   - GET    /tags        : tag names with the books carrying them
//   - PUT    /tags/:name  : rename and reassign ({"new_name": "...", "books": [ids]})
//   - DELETE /tags/:name  : delete the tag from every book
package tags
