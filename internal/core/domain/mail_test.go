package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddressList(t *testing.T) {
	got, err := ParseAddressList("to", " a@x.com, ,b.c+tag@sub.example.org ")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b.c+tag@sub.example.org"}, got)
}

func TestParseAddressList_ReportsInvalidByValue(t *testing.T) {
	_, err := ParseAddressList("cc", "good@x.com, nope, also@bad@x.com")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cc", ve.Field)
	assert.Equal(t, "invalid email format: nope, also@bad@x.com", ve.Reason)
}

func TestParseAddressList_Empty(t *testing.T) {
	got, err := ParseAddressList("bcc", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane@x.com"))
	assert.False(t, IsValidEmail("jane@-x.com"))
	assert.False(t, IsValidEmail("jane x@x.com"))
}

func TestErrorsUnwrap(t *testing.T) {
	err := error(&AuthError{Reason: "token revoked", Err: ErrAuthRequired})
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, "mail account not connected: token revoked", err.Error())

	se := &StoreError{Op: "load selections", Status: 500, Err: assert.AnError}
	assert.ErrorIs(t, se, assert.AnError)
	assert.Contains(t, se.Error(), "status 500")
}
