package reconcile

// Dedupe returns keys without repeats, preserving first-occurrence order.
func Dedupe[K comparable](keys []K) []K {
	seen := make(map[K]struct{}, len(keys))
	out := make([]K, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Reconcile computes the plan that turns existing into the de-duplicated requested set.
// existing must be in stable storage order; key extracts the compared value of a record.
func Reconcile[R any, K comparable](existing []R, requested []K, key func(R) K) Plan[R, K] {
	wanted := Dedupe(requested)

	// Working set of requested keys not yet matched by an existing record.
	remaining := make(map[K]struct{}, len(wanted))
	for _, k := range wanted {
		remaining[k] = struct{}{}
	}

	plan := Plan[R, K]{
		Delete: []R{},
		Insert: []K{},
		Kept:   []R{},
	}

	for _, rec := range existing {
		k := key(rec)
		if _, ok := remaining[k]; ok {
			delete(remaining, k)
			plan.Kept = append(plan.Kept, rec)
			continue
		}
		plan.Delete = append(plan.Delete, rec)
	}

	for _, k := range wanted {
		if _, ok := remaining[k]; ok {
			plan.Insert = append(plan.Insert, k)
		}
	}

	return plan
}
