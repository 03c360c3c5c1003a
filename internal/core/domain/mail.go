package domain

import (
	"regexp"
	"strings"
)

// emailPattern is the local-part/domain grammar accepted at the dispatch boundary.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// IsValidEmail reports whether addr is a syntactically valid address.
func IsValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// ParseAddressList splits a comma-separated list, trims each entry and drops
// blanks. Invalid entries are reported by value.
func ParseAddressList(field, raw string) ([]string, error) {
	var (
		out     []string
		invalid []string
	)
	for _, part := range strings.Split(raw, ",") {
		addr := strings.TrimSpace(part)
		if addr == "" {
			continue
		}
		if !IsValidEmail(addr) {
			invalid = append(invalid, addr)
			continue
		}
		out = append(out, addr)
	}
	if len(invalid) > 0 {
		return nil, NewValidationError(field, "invalid email format: %s", strings.Join(invalid, ", "))
	}
	return out, nil
}

// OutgoingMail is a fully validated message ready for the transport.
type OutgoingMail struct {
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	HTMLBody string
}

// Email is a generated subject and HTML body for one recipient type.
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
