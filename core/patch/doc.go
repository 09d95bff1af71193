// Package patch provides tri-state fields for partial updates.
//
// A Field is Unchanged when its key is absent from the request body, Cleared when
// the client explicitly unsets it and Set when a value was supplied. Services switch
// on the state instead of guessing from zero values.
//
// Uint additionally honours the legacy clear sentinels -1 and "" used by existing
// clients for series, position_in_series and page_count.
package patch
