package domain

import "strings"

// FieldKey identifies a standard candidate attribute or a custom field.
type FieldKey string

const (
	FieldName                 FieldKey = "name"
	FieldPhone                FieldKey = "phone"
	FieldEmail                FieldKey = "email"
	FieldSalary               FieldKey = "salary"
	FieldExpectedCTC          FieldKey = "expected_ctc"
	FieldNotice               FieldKey = "notice"
	FieldTotalExperienceYears FieldKey = "totalExperienceYears"
	FieldLocation             FieldKey = "location"
	FieldCVURL                FieldKey = "cvUrl"
	FieldCurrentCompanyName   FieldKey = "currentCompanyName"
	FieldSkills               FieldKey = "skills"
	FieldEducation            FieldKey = "education"
	FieldJobTitle             FieldKey = "jobTitle"
)

// standardFields is the declaration order of the fixed catalog block.
var standardFields = []FieldKey{
	FieldName,
	FieldPhone,
	FieldEmail,
	FieldSalary,
	FieldExpectedCTC,
	FieldNotice,
	FieldTotalExperienceYears,
	FieldLocation,
	FieldCVURL,
	FieldCurrentCompanyName,
	FieldSkills,
	FieldEducation,
	FieldJobTitle,
}

// StandardFields returns a copy of the standard field keys in declaration order.
func StandardFields() []FieldKey {
	out := make([]FieldKey, len(standardFields))
	copy(out, standardFields)
	return out
}

// IsStandard reports whether k names one of the fixed candidate attributes.
func (k FieldKey) IsStandard() bool {
	for _, s := range standardFields {
		if s == k {
			return true
		}
	}
	return false
}

// ParseFieldKey validates raw as a field key. Keys are case-sensitive and are
// not trimmed; blank keys are rejected.
func ParseFieldKey(raw string) (FieldKey, error) {
	if strings.TrimSpace(raw) == "" {
		return "", NewValidationError("field", "field key must not be empty")
	}
	return FieldKey(raw), nil
}

// CatalogFor returns every field key that can be shown for c: the standard
// keys followed by c's custom keys in stored order. A custom key that collides
// with a standard key (or repeats) is listed once.
func CatalogFor(c Candidate) []FieldKey {
	out := make([]FieldKey, 0, len(standardFields)+len(c.CustomFields))
	seen := make(map[FieldKey]struct{}, cap(out))
	for _, k := range standardFields {
		out = append(out, k)
		seen[k] = struct{}{}
	}
	for _, f := range c.CustomFields {
		k := FieldKey(f.Key)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// containsKey reports whether keys holds k.
func containsKey(keys []FieldKey, k FieldKey) bool {
	for _, c := range keys {
		if c == k {
			return true
		}
	}
	return false
}

// CheckInCatalog returns a ValidationError when k is not part of catalog.
func CheckInCatalog(catalog []FieldKey, k FieldKey) error {
	if !containsKey(catalog, k) {
		return NewValidationError("field", "unknown field %q", k)
	}
	return nil
}
