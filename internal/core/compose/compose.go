// Package compose renders the per-recipient candidate email. It is pure: the
// same candidate, recipient, visibility and order always yield the same bytes.
package compose

import (
	"strconv"
	"strings"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

const (
	// FallbackSubject is used when none of the subject fields is visible.
	FallbackSubject = "Candidate Information"

	// NoVisibleFieldsBody replaces the whole body when nothing is visible.
	NoVisibleFieldsBody = "<p>No information is selected to be visible for this recipient type.</p>"

	agencyHeader = "Agency Name"
	brandCell    = "<span style='color:red;'>Buzz</span><span style='color:blue;'>Hire</span>"

	tableStyle  = "border-collapse: collapse; min-width: 2000px; margin: 0 auto; font-size: 14px; font-family: Arial, sans-serif;"
	headerStyle = "background-color: #f2f2f2;"
	thStyle     = "padding: 2px 10px; min-width:150px; text-align: left; border: 1px solid #ddd;"
	tdStyle     = "padding: 2px 10px; min-width:150px; text-align: left; background-color:rgb(255, 255, 255);border: 1px solid #ddd;"
)

type row struct {
	key   domain.FieldKey
	label string
	value string
}

// Generate builds the subject and body for r.
func Generate(c domain.Candidate, r domain.RecipientType, vis domain.FieldVisibility, order domain.FieldOrder) domain.Email {
	return domain.Email{
		Subject: Subject(c, r, vis),
		Body:    Body(c, r, vis, order),
	}
}

// Body renders the HTML table of every field visible to r.
//
// Values are inserted verbatim without escaping, so markup stored on the
// candidate reaches the email unchanged.
func Body(c domain.Candidate, r domain.RecipientType, vis domain.FieldVisibility, order domain.FieldOrder) string {
	visible := visibleRows(c, r, vis)
	if len(visible) == 0 {
		return NoVisibleFieldsBody
	}
	rows := applyOrder(visible, order)

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px;">`)
	b.WriteString(`<h2 style="color: #333; margin-bottom: 10px; font-weight:bold; font-size:30px">Candidate Information</h2>`)
	b.WriteString(`<p style="margin-bottom: 20px;">Please find below the details for `)
	b.WriteString(c.Name)
	b.WriteString(`:</p>`)

	b.WriteString(`<table style="` + tableStyle + `"><thead>`)
	b.WriteString(`<tr style="` + headerStyle + `">`)
	b.WriteString(`<th style="` + thStyle + `">` + agencyHeader + `</th>`)
	for _, rw := range rows {
		b.WriteString(`<th style="` + thStyle + `">`)
		b.WriteString(rw.label)
		b.WriteString(`</th>`)
	}
	b.WriteString(`</tr></thead><tbody><tr>`)
	b.WriteString(`<td style="` + tdStyle + `">` + brandCell + `</td>`)
	for _, rw := range rows {
		b.WriteString(`<td style="` + tdStyle + `">`)
		b.WriteString(rw.value)
		b.WriteString(`</td>`)
	}
	b.WriteString(`</tr></tbody></table>`)

	b.WriteString(`<p style="margin-top: 20px;">Please let me know if you need any additional information.</p>`)
	b.WriteString(`<p>Best regards,</p></div>`)
	return b.String()
}

// Subject starts with the candidate's name and appends job title, current
// company, location and the first three skills when each is visible to r
// and non-empty. The check order is fixed and ignores any field order.
func Subject(c domain.Candidate, r domain.RecipientType, vis domain.FieldVisibility) string {
	var parts []string
	if c.Name != "" {
		parts = append(parts, c.Name)
	}
	add := func(key domain.FieldKey, v string) {
		if v != "" && vis.IsVisible(key, r) {
			parts = append(parts, v)
		}
	}
	add(domain.FieldJobTitle, c.JobTitle)
	add(domain.FieldCurrentCompanyName, c.CurrentCompanyName)
	add(domain.FieldLocation, c.Location)
	if len(c.Skills) > 0 {
		skills := c.Skills
		if len(skills) > 3 {
			skills = skills[:3]
		}
		add(domain.FieldSkills, strings.Join(skills, ", "))
	}

	if len(parts) == 0 {
		return FallbackSubject
	}
	return "Candidate: " + strings.Join(parts, " - ")
}

// visibleRows returns the catalog fields visible to r in catalog order.
func visibleRows(c domain.Candidate, r domain.RecipientType, vis domain.FieldVisibility) []row {
	var rows []row
	for _, key := range domain.CatalogFor(c) {
		if !vis.IsVisible(key, r) {
			continue
		}
		v, _ := c.FieldValue(key)
		rows = append(rows, row{key: key, label: Label(key), value: FormatValue(v)})
	}
	return rows
}

// applyOrder keeps only the visible keys named in order, in that order.
//
// NOTE: visible fields missing from a non-empty order are dropped, not
// appended. Callers that want every visible field must pass a complete order.
func applyOrder(visible []row, order domain.FieldOrder) []row {
	if len(order) == 0 {
		return visible
	}
	byKey := make(map[domain.FieldKey]row, len(visible))
	for _, rw := range visible {
		byKey[rw.key] = rw
	}
	out := make([]row, 0, len(order))
	for _, key := range order {
		rw, ok := byKey[key]
		if !ok {
			continue
		}
		out = append(out, rw)
		delete(byKey, key)
	}
	return out
}

// FormatValue renders a field value for a table cell. Lists are comma-joined,
// numbers use their shortest form, nil becomes empty and strings starting with
// "http" become links.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(v, ", ")
	case *float64:
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		if strings.HasPrefix(v, "http") {
			return `<a href="` + v + `" target="_blank">` + v + `</a>`
		}
		return v
	}
	return ""
}

// Label turns a field key into its column header. Standard keys get "_"
// replaced by a space, a space before each capital letter and an upper-case
// first letter; custom keys are used as typed.
func Label(key domain.FieldKey) string {
	if !key.IsStandard() {
		return string(key)
	}
	s := strings.ReplaceAll(string(key), "_", " ")

	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" {
		return out
	}
	return strings.ToUpper(out[:1]) + out[1:]
}
