package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFields_JSONKeepsOrder(t *testing.T) {
	raw := `{"zeta":"1","alpha":"2","mid":3,"none":null}`

	var cf CustomFields
	require.NoError(t, json.Unmarshal([]byte(raw), &cf))
	assert.Equal(t, []string{"zeta", "alpha", "mid", "none"}, cf.Keys())

	v, ok := cf.Get("mid")
	require.True(t, ok)
	assert.Equal(t, "3", v)

	out, err := json.Marshal(cf)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"1","alpha":"2","mid":"3","none":""}`, string(out))
}

func TestCustomFields_RejectsNonObject(t *testing.T) {
	var cf CustomFields
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &cf))
}

func TestCustomFields_SetKeepsPosition(t *testing.T) {
	cf := CustomFields{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}

	got := cf.Set("a", "9").Set("c", "3")

	assert.Equal(t, CustomFields{{Key: "a", Value: "9"}, {Key: "b", Value: "2"}, {Key: "c", Value: "3"}}, got)
	assert.Equal(t, "1", cf[0].Value, "receiver must not be modified")
}

func TestCandidate_JSONOmitsEmptyCustomFields(t *testing.T) {
	out, err := json.Marshal(Candidate{Name: "Jane"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "customFields")
	assert.Contains(t, string(out), `"salary":null`)
}

func TestTimestamp_AcceptsStoreFormats(t *testing.T) {
	want := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	for _, raw := range []string{
		`"2024-03-05T10:30:00Z"`,
		`"Tue, 05 Mar 2024 10:30:00 GMT"`,
		`"2024-03-05 10:30:00"`,
	} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, want.Equal(ts.Time), raw)
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestCandidate_Validate(t *testing.T) {
	assert.NoError(t, Candidate{Name: "Jane", Email: "jane@x.com"}.Validate())

	tests := map[string]Candidate{
		"missing name":     {Email: "jane@x.com"},
		"missing email":    {Name: "Jane"},
		"bad email":        {Name: "Jane", Email: "jane@"},
		"blank custom key": {Name: "Jane", Email: "jane@x.com", CustomFields: CustomFields{{Key: "", Value: "x"}}},
	}
	for name, c := range tests {
		t.Run(name, func(t *testing.T) {
			var ve *ValidationError
			assert.ErrorAs(t, c.Validate(), &ve)
		})
	}
}

func TestCandidate_FieldValue(t *testing.T) {
	salary := 120000.0
	c := Candidate{
		Name:         "Jane",
		Salary:       &salary,
		Skills:       []string{"Go"},
		CustomFields: CustomFields{{Key: "visa", Value: "H1B"}, {Key: "name", Value: "shadow"}},
	}

	v, ok := c.FieldValue(FieldName)
	require.True(t, ok)
	assert.Equal(t, "Jane", v)

	v, ok = c.FieldValue("visa")
	require.True(t, ok)
	assert.Equal(t, "H1B", v)

	_, ok = c.FieldValue("missing")
	assert.False(t, ok)
}

func TestCandidate_Matches(t *testing.T) {
	c := Candidate{Name: "Jane Doe", Email: "jane@x.com", Skills: []string{"Kubernetes"}}

	assert.True(t, c.Matches("doe"))
	assert.True(t, c.Matches("KUBER"))
	assert.True(t, c.Matches(""))
	assert.False(t, c.Matches("rust"))
}
