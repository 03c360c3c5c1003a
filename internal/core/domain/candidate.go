package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Candidate is the recruiting subject whose data is shared with recipients.
type Candidate struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Phone                string       `json:"phone"`
	Email                string       `json:"email"`
	Salary               *float64     `json:"salary"`
	ExpectedCTC          *float64     `json:"expected_ctc"`
	Notice               *float64     `json:"notice"`
	TotalExperienceYears *float64     `json:"totalExperienceYears"`
	Location             string       `json:"location"`
	CVURL                string       `json:"cvUrl"`
	CurrentCompanyName   string       `json:"currentCompanyName"`
	Skills               []string     `json:"skills"`
	Education            string       `json:"education"`
	JobTitle             string       `json:"jobTitle"`
	Source               string       `json:"source"`
	CustomFields         CustomFields `json:"customFields,omitempty"`
	CreatedAt            *Timestamp   `json:"createdAt,omitempty"`
}

// Validate checks the invariants a candidate must satisfy before it is persisted.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return NewValidationError("email", "email is required")
	}
	if !IsValidEmail(strings.TrimSpace(c.Email)) {
		return NewValidationError("email", "email must be a valid email")
	}
	for _, f := range c.CustomFields {
		if f.Key == "" {
			return NewValidationError("customFields", "custom field keys must not be empty")
		}
	}
	return nil
}

// FieldValue returns the raw value behind a field key. Standard keys take
// precedence over a custom field with the same name.
func (c Candidate) FieldValue(key FieldKey) (any, bool) {
	switch key {
	case FieldName:
		return c.Name, true
	case FieldPhone:
		return c.Phone, true
	case FieldEmail:
		return c.Email, true
	case FieldSalary:
		return c.Salary, true
	case FieldExpectedCTC:
		return c.ExpectedCTC, true
	case FieldNotice:
		return c.Notice, true
	case FieldTotalExperienceYears:
		return c.TotalExperienceYears, true
	case FieldLocation:
		return c.Location, true
	case FieldCVURL:
		return c.CVURL, true
	case FieldCurrentCompanyName:
		return c.CurrentCompanyName, true
	case FieldSkills:
		return c.Skills, true
	case FieldEducation:
		return c.Education, true
	case FieldJobTitle:
		return c.JobTitle, true
	}
	if v, ok := c.CustomFields.Get(string(key)); ok {
		return v, true
	}
	return nil, false
}

// Matches reports whether term occurs (case-insensitively) in the candidate's
// name, email, company, location or any skill.
func (c Candidate) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, s := range []string{c.Name, c.Email, c.CurrentCompanyName, c.Location} {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	for _, s := range c.Skills {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// CustomField is a single operator-defined attribute.
type CustomField struct {
	Key   string
	Value string
}

// CustomFields is an insertion-ordered string map. It encodes as a JSON object
// and keeps the key order found on the wire, which drives default field order.
type CustomFields []CustomField

// Get returns the value stored under key.
func (cf CustomFields) Get(key string) (string, bool) {
	for _, f := range cf {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set returns a copy with key set to value. Existing keys keep their position.
func (cf CustomFields) Set(key, value string) CustomFields {
	out := make(CustomFields, len(cf), len(cf)+1)
	copy(out, cf)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, CustomField{Key: key, Value: value})
}

// Keys returns the keys in stored order.
func (cf CustomFields) Keys() []string {
	keys := make([]string, len(cf))
	for i, f := range cf {
		keys[i] = f.Key
	}
	return keys
}

func (cf CustomFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range cf {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (cf *CustomFields) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*cf = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("customFields: expected object, got %v", tok)
	}

	out := CustomFields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("customFields: expected string key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		out = out.Set(key, rawToString(raw))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*cf = out
	return nil
}

// rawToString keeps strings as-is and renders any other JSON scalar by its
// literal text; null becomes the empty string.
func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := string(bytes.TrimSpace(raw))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}

// Timestamp is a server-assigned instant. It accepts RFC 3339, RFC 1123 (the
// format Flask-style stores emit) and plain "YYYY-MM-DD HH:MM:SS".
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// NewTimestamp wraps t in UTC.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t.UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}
