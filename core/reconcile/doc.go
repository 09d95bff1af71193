// Package reconcile diffs a persisted child collection against a client-submitted
// target collection and applies the resulting plan.
//
// The same algorithm backs every collection-valued update in the service:
//   - the author names of a book,
//   - the tag names of a book,
//   - the set of books carrying a tag name (tag rename / reassign).
//
// # Engine
//
// Reconcile takes the existing records in storage order, the requested keys and a
// key extractor. Requested keys are de-duplicated first (first occurrence wins), then
// every existing record is matched against the remaining keys. A record whose key was
// already consumed by an earlier record is deleted, so legacy duplicate rows collapse
// to one.
//
// # Plan
//
// The resulting Plan lists the records to delete, the keys to insert and the records
// kept untouched. Apply executes a plan through a Mutator; mutators that also
// implement Keeper get a callback for kept records (used by tag rename to rewrite
// the name in place).
//
// # Usage
//
//	plan := reconcile.Reconcile(existing, []string{"Jane Doe", "New Author"},
//	    func(a models.Author) string { return a.AuthorName })
//	if _, err := reconcile.Apply(ctx, plan, authorRows{tx: tx, book: book}); err != nil {
//	    return err
//	}
package reconcile
