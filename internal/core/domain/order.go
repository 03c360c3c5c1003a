package domain

// FieldOrder is an explicit rendering sequence of field keys, independent of
// the catalog's natural order.
type FieldOrder []FieldKey

// EffectiveOrder returns stored when it is non-empty and the catalog otherwise.
func EffectiveOrder(stored FieldOrder, catalog []FieldKey) FieldOrder {
	if len(stored) > 0 {
		return stored.Clone()
	}
	return FieldOrder(catalog).Clone()
}

// Clone returns a copy of o; never nil.
func (o FieldOrder) Clone() FieldOrder {
	out := make(FieldOrder, len(o))
	copy(out, o)
	return out
}

// Reorder moves the element at from to index to. Both indices must address an
// existing element; out-of-range input is an error and is never clamped.
func (o FieldOrder) Reorder(from, to int) (FieldOrder, error) {
	if from < 0 || from >= len(o) {
		return nil, NewValidationError("from", "index %d out of range [0,%d)", from, len(o))
	}
	if to < 0 || to >= len(o) {
		return nil, NewValidationError("to", "index %d out of range [0,%d)", to, len(o))
	}

	moved := o[from]
	rest := make(FieldOrder, 0, len(o)-1)
	rest = append(rest, o[:from]...)
	rest = append(rest, o[from+1:]...)

	out := make(FieldOrder, 0, len(o))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out, nil
}
