package reconcile

import "context"

// Plan is the minimal set of operations that aligns an existing collection with a
// requested one.
type Plan[R any, K comparable] struct {
	// Delete holds existing records whose key is not requested (or was already
	// matched by an earlier record).
	Delete []R

	// Insert holds requested keys that no existing record carries, in request order.
	Insert []K

	// Kept holds existing records matched by a requested key, in storage order.
	Kept []R
}

// IsNoop reports whether applying the plan would not touch storage.
func (p Plan[R, K]) IsNoop() bool {
	return len(p.Delete) == 0 && len(p.Insert) == 0
}

// Summary returns aggregate counts for logging.
func (p Plan[R, K]) Summary() Summary {
	return Summary{
		Kept:     len(p.Kept),
		Deleted:  len(p.Delete),
		Inserted: len(p.Insert),
	}
}

// Summary provides aggregate statistics for a plan.
type Summary struct {
	Kept     int `json:"kept"`
	Deleted  int `json:"deleted"`
	Inserted int `json:"inserted"`
}

// Mutator persists the delete and insert halves of a plan.
type Mutator[R any, K comparable] interface {
	// Delete removes the given records.
	Delete(ctx context.Context, records []R) error
	// Insert creates one record per key.
	Insert(ctx context.Context, keys []K) error
}

// Keeper is implemented by mutators that need to touch kept records,
// e.g. to rename them in place.
type Keeper[R any] interface {
	Keep(ctx context.Context, records []R) error
}
