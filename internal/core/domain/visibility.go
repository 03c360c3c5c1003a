package domain

// RecipientType is the audience of a generated email.
type RecipientType string

const (
	RecipientClient    RecipientType = "client"
	RecipientInternal  RecipientType = "internal"
	RecipientSuperiors RecipientType = "superiors"
)

// RecipientTypes lists every recipient type in display order.
var RecipientTypes = []RecipientType{RecipientClient, RecipientInternal, RecipientSuperiors}

// Valid reports whether r is one of the closed set of recipient types.
func (r RecipientType) Valid() bool {
	switch r {
	case RecipientClient, RecipientInternal, RecipientSuperiors:
		return true
	}
	return false
}

// ParseRecipientType converts raw into a RecipientType.
func ParseRecipientType(raw string) (RecipientType, error) {
	r := RecipientType(raw)
	if !r.Valid() {
		return "", NewValidationError("recipient", "recipient must be one of: client internal superiors")
	}
	return r, nil
}

// VisibilityToggle holds one field's visibility per recipient type.
type VisibilityToggle struct {
	Client    bool `json:"client" bson:"client"`
	Internal  bool `json:"internal" bson:"internal"`
	Superiors bool `json:"superiors" bson:"superiors"`
}

// AllVisible is the value read for any field without an explicit entry.
func AllVisible() VisibilityToggle {
	return VisibilityToggle{Client: true, Internal: true, Superiors: true}
}

// For returns the visibility for r.
func (t VisibilityToggle) For(r RecipientType) bool {
	switch r {
	case RecipientClient:
		return t.Client
	case RecipientInternal:
		return t.Internal
	case RecipientSuperiors:
		return t.Superiors
	}
	return false
}

// With returns a copy of t with r's visibility set to v.
func (t VisibilityToggle) With(r RecipientType, v bool) VisibilityToggle {
	switch r {
	case RecipientClient:
		t.Client = v
	case RecipientInternal:
		t.Internal = v
	case RecipientSuperiors:
		t.Superiors = v
	}
	return t
}

// FieldVisibility maps field keys to their per-recipient visibility. Only
// explicitly set keys are stored; absent keys read as AllVisible.
//
// All methods are pure: they never modify the receiver.
type FieldVisibility map[FieldKey]VisibilityToggle

// DefaultVisibility returns an all-visible entry for every key.
func DefaultVisibility(keys []FieldKey) FieldVisibility {
	m := make(FieldVisibility, len(keys))
	for _, k := range keys {
		m[k] = AllVisible()
	}
	return m
}

// Clone returns a copy of m. A nil receiver yields an empty map.
func (m FieldVisibility) Clone() FieldVisibility {
	out := make(FieldVisibility, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Effective returns the stored toggle for k or the all-visible default.
func (m FieldVisibility) Effective(k FieldKey) VisibilityToggle {
	if t, ok := m[k]; ok {
		return t
	}
	return AllVisible()
}

// IsVisible reports whether k is visible to r.
func (m FieldVisibility) IsVisible(k FieldKey, r RecipientType) bool {
	return m.Effective(k).For(r)
}

// Toggle flips the effective visibility of (k, r). An unset key is first
// materialised as all-visible so the other recipients keep reading true.
func (m FieldVisibility) Toggle(k FieldKey, r RecipientType) FieldVisibility {
	out := m.Clone()
	cur := m.Effective(k)
	out[k] = cur.With(r, !cur.For(r))
	return out
}

// SetAllForRecipient sets r's visibility to v for every key in keys and for
// every key already stored. The other recipients keep their effective values.
func (m FieldVisibility) SetAllForRecipient(keys []FieldKey, r RecipientType, v bool) FieldVisibility {
	out := m.Clone()
	for k, t := range m {
		out[k] = t.With(r, v)
	}
	for _, k := range keys {
		out[k] = out.Effective(k).With(r, v)
	}
	return out
}

// Keys returns the explicitly stored keys (unordered).
func (m FieldVisibility) Keys() []FieldKey {
	keys := make([]FieldKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
