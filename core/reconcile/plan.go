package reconcile

import (
	"context"
	"fmt"
)

// Apply executes a plan: deletions first, then kept records (when the mutator is a
// Keeper), then insertions. It returns the number of records touched.
// Callers run it inside a transaction; a failure leaves the remaining steps undone.
func Apply[R any, K comparable](ctx context.Context, plan Plan[R, K], m Mutator[R, K]) (executed int, err error) {
	if len(plan.Delete) > 0 {
		if err := m.Delete(ctx, plan.Delete); err != nil {
			return executed, fmt.Errorf("failed to delete %d records: %w", len(plan.Delete), err)
		}
		executed += len(plan.Delete)
	}

	if keeper, ok := m.(Keeper[R]); ok && len(plan.Kept) > 0 {
		if err := keeper.Keep(ctx, plan.Kept); err != nil {
			return executed, fmt.Errorf("failed to update %d kept records: %w", len(plan.Kept), err)
		}
		executed += len(plan.Kept)
	}

	if len(plan.Insert) > 0 {
		if err := m.Insert(ctx, plan.Insert); err != nil {
			return executed, fmt.Errorf("failed to insert %d records: %w", len(plan.Insert), err)
		}
		executed += len(plan.Insert)
	}

	return executed, nil
}
