package domain

// RecipientSelections is the persisted (visibility, order) pair of a candidate.
type RecipientSelections struct {
	CandidateID     string          `json:"candidateId"`
	FieldVisibility FieldVisibility `json:"fieldVisibility"`
	FieldOrder      FieldOrder      `json:"fieldOrder"`
}

// NewDefaultSelections builds the baseline record for a candidate that has no
// stored selections: every catalog field visible to everyone, no explicit order.
func NewDefaultSelections(c Candidate) RecipientSelections {
	return RecipientSelections{
		CandidateID:     c.ID,
		FieldVisibility: DefaultVisibility(CatalogFor(c)),
		FieldOrder:      FieldOrder{},
	}
}

// Clone returns a deep copy with non-nil collections.
func (s RecipientSelections) Clone() RecipientSelections {
	return RecipientSelections{
		CandidateID:     s.CandidateID,
		FieldVisibility: s.FieldVisibility.Clone(),
		FieldOrder:      s.FieldOrder.Clone(),
	}
}

// Reconcile validates s against catalog before it replaces stored. A key
// outside the catalog that stored already holds belongs to a custom field
// removed since; it is dropped. Any other unknown key is rejected.
func (s RecipientSelections) Reconcile(catalog []FieldKey, stored RecipientSelections) (RecipientSelections, error) {
	out := s.Clone()
	for k := range s.FieldVisibility {
		if containsKey(catalog, k) {
			continue
		}
		if _, ok := stored.FieldVisibility[k]; !ok {
			return RecipientSelections{}, NewValidationError("fieldVisibility", "unknown field %q", k)
		}
		delete(out.FieldVisibility, k)
	}

	order := make(FieldOrder, 0, len(s.FieldOrder))
	for _, k := range s.FieldOrder {
		if containsKey(catalog, k) {
			order = append(order, k)
			continue
		}
		if !containsKey(stored.FieldOrder, k) {
			return RecipientSelections{}, NewValidationError("fieldOrder", "unknown field %q", k)
		}
	}
	out.FieldOrder = order
	return out, nil
}

// Prune returns a copy of s without the keys that are no longer in catalog.
func (s RecipientSelections) Prune(catalog []FieldKey) RecipientSelections {
	out := s.Clone()
	for k := range out.FieldVisibility {
		if !containsKey(catalog, k) {
			delete(out.FieldVisibility, k)
		}
	}
	order := make(FieldOrder, 0, len(out.FieldOrder))
	for _, k := range out.FieldOrder {
		if containsKey(catalog, k) {
			order = append(order, k)
		}
	}
	out.FieldOrder = order
	return out
}
