package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

func janeDoe() domain.Candidate {
	return domain.Candidate{
		ID:                 "c1",
		Name:               "Jane Doe",
		Email:              "jane@x.com",
		Skills:             []string{"Go", "Rust"},
		JobTitle:           "Engineer",
		CurrentCompanyName: "Acme",
		Location:           "NYC",
	}
}

// headers extracts the text of every <th> cell in order.
func headers(body string) []string {
	var out []string
	for _, part := range strings.Split(body, "<th ")[1:] {
		start := strings.Index(part, ">") + 1
		end := strings.Index(part, "</th>")
		out = append(out, part[start:end])
	}
	return out
}

func TestSubject_AllVisible(t *testing.T) {
	got := Subject(janeDoe(), domain.RecipientClient, domain.FieldVisibility{})
	assert.Equal(t, "Candidate: Jane Doe - Engineer - Acme - NYC - Go, Rust", got)
}

func TestSubject_HiddenPartsAndSkillLimit(t *testing.T) {
	c := janeDoe()
	c.Skills = []string{"Go", "Rust", "SQL", "K8s"}
	vis := domain.FieldVisibility{
		domain.FieldCurrentCompanyName: {Client: false, Internal: true, Superiors: true},
		domain.FieldName:               {Client: false, Internal: true, Superiors: true},
	}

	got := Subject(c, domain.RecipientClient, vis)

	assert.Equal(t, "Candidate: Jane Doe - Engineer - NYC - Go, Rust, SQL", got)
}

func TestSubject_Fallback(t *testing.T) {
	assert.Equal(t, FallbackSubject, Subject(domain.Candidate{}, domain.RecipientInternal, nil))
}

func TestBody_AllHiddenForRecipient(t *testing.T) {
	c := janeDoe()
	vis := domain.FieldVisibility{}.SetAllForRecipient(domain.CatalogFor(c), domain.RecipientInternal, false)

	email := Generate(c, domain.RecipientInternal, vis, nil)

	assert.Equal(t, NoVisibleFieldsBody, email.Body)
	assert.NotEqual(t, NoVisibleFieldsBody, Body(c, domain.RecipientClient, vis, nil))
}

func TestBody_OrderDropsUnlistedFields(t *testing.T) {
	c := janeDoe()
	vis := domain.FieldVisibility{}
	for _, k := range domain.CatalogFor(c) {
		if k != domain.FieldName && k != domain.FieldEmail && k != domain.FieldLocation {
			vis[k] = domain.VisibilityToggle{}
		}
	}

	body := Body(c, domain.RecipientClient, vis, domain.FieldOrder{domain.FieldLocation, domain.FieldName})

	assert.Equal(t, []string{"Agency Name", "Location", "Name"}, headers(body))
	assert.NotContains(t, body, "jane@x.com")
}

func TestBody_CatalogOrderWithoutExplicitOrder(t *testing.T) {
	c := janeDoe()
	c.CustomFields = domain.CustomFields{{Key: "visa_status", Value: "H1B"}}

	body := Body(c, domain.RecipientClient, nil, nil)

	h := headers(body)
	require.Len(t, h, len(domain.CatalogFor(c))+1)
	assert.Equal(t, "Agency Name", h[0])
	assert.Equal(t, "Name", h[1])
	assert.Equal(t, "Expected ctc", h[5])
	assert.Equal(t, "Total Experience Years", h[7])
	assert.Equal(t, "Cv Url", h[9])
	assert.Equal(t, "visa_status", h[len(h)-1], "custom labels are not transformed")
}

func TestBody_Layout(t *testing.T) {
	body := Body(janeDoe(), domain.RecipientClient, nil, domain.FieldOrder{domain.FieldName})

	want := `<div style="font-family: Arial, sans-serif; max-width: 600px;">` +
		`<h2 style="color: #333; margin-bottom: 10px; font-weight:bold; font-size:30px">Candidate Information</h2>` +
		`<p style="margin-bottom: 20px;">Please find below the details for Jane Doe:</p>` +
		`<table style="border-collapse: collapse; min-width: 2000px; margin: 0 auto; font-size: 14px; font-family: Arial, sans-serif;"><thead>` +
		`<tr style="background-color: #f2f2f2;">` +
		`<th style="padding: 2px 10px; min-width:150px; text-align: left; border: 1px solid #ddd;">Agency Name</th>` +
		`<th style="padding: 2px 10px; min-width:150px; text-align: left; border: 1px solid #ddd;">Name</th>` +
		`</tr></thead><tbody><tr>` +
		`<td style="padding: 2px 10px; min-width:150px; text-align: left; background-color:rgb(255, 255, 255);border: 1px solid #ddd;"><span style='color:red;'>Buzz</span><span style='color:blue;'>Hire</span></td>` +
		`<td style="padding: 2px 10px; min-width:150px; text-align: left; background-color:rgb(255, 255, 255);border: 1px solid #ddd;">Jane Doe</td>` +
		`</tr></tbody></table>` +
		`<p style="margin-top: 20px;">Please let me know if you need any additional information.</p>` +
		`<p>Best regards,</p></div>`

	assert.Equal(t, want, body)
}

func TestFormatValue(t *testing.T) {
	salary := 120000.0
	years := 4.5
	var missing *float64

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"list", []string{"Go", "Rust"}, "Go, Rust"},
		{"integer", &salary, "120000"},
		{"fraction", &years, "4.5"},
		{"null number", missing, ""},
		{"nil", nil, ""},
		{"link", "https://cv.example.com/jane.pdf", `<a href="https://cv.example.com/jane.pdf" target="_blank">https://cv.example.com/jane.pdf</a>`},
		{"verbatim", "<b>bold</b>", "<b>bold</b>"},
		{"list of links", []string{"http://a"}, "http://a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Current Company Name", Label(domain.FieldCurrentCompanyName))
	assert.Equal(t, "Expected ctc", Label(domain.FieldExpectedCTC))
	assert.Equal(t, "Job Title", Label(domain.FieldJobTitle))
	assert.Equal(t, "myCustom_key", Label("myCustom_key"))
}

func TestGenerate_Deterministic(t *testing.T) {
	c := janeDoe()
	vis := domain.FieldVisibility{domain.FieldPhone: {Client: false}}
	assert.Equal(t, Generate(c, domain.RecipientClient, vis, nil), Generate(c, domain.RecipientClient, vis, nil))
}
