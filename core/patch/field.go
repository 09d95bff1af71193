package patch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"booktracker/core/utils"
)

// State is the tri-state of a patch field.
type State uint8

const (
	Unchanged State = iota
	Cleared
	Assigned
)

// Field holds an optional update for a value of type T.
type Field[T any] struct {
	state State
	value T
}

// Set returns a field assigning v.
func Set[T any](v T) Field[T] {
	return Field[T]{state: Assigned, value: v}
}

// Clear returns a field unsetting the stored value.
func Clear[T any]() Field[T] {
	return Field[T]{state: Cleared}
}

func (f Field[T]) IsUnchanged() bool { return f.state == Unchanged }
func (f Field[T]) IsCleared() bool   { return f.state == Cleared }
func (f Field[T]) IsSet() bool       { return f.state == Assigned }

// Value returns the assigned value (the zero value unless IsSet).
func (f Field[T]) Value() T { return f.value }

// ApplyTo writes the field into a nullable destination.
func (f Field[T]) ApplyTo(dst **T) {
	switch f.state {
	case Assigned:
		v := f.value
		*dst = &v
	case Cleared:
		*dst = nil
	}
}

// UnmarshalJSON treats null as Cleared. Absent keys never reach this method
// and stay Unchanged.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Clear[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Set(v)
	return nil
}

// Uint is a nullable unsigned field that also accepts -1 and "" as Cleared.
type Uint struct {
	Field[uint]
}

// SetUint returns a Uint assigning v.
func SetUint(v uint) Uint { return Uint{Set(v)} }

// ClearUint returns a Uint unsetting the stored value.
func ClearUint() Uint { return Uint{Clear[uint]()} }

func (u *Uint) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		u.Field = Clear[uint]()
		return nil
	case string:
		if v == "" {
			u.Field = Clear[uint]()
			return nil
		}
	}

	n, err := utils.ToInt(raw)
	if err != nil {
		return err
	}
	if n == -1 {
		u.Field = Clear[uint]()
		return nil
	}
	if n < 0 {
		return fmt.Errorf("%d is not a valid value", n)
	}
	u.Field = Set(uint(n))
	return nil
}
