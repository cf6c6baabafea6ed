package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotBlank(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name string
		in   *string
		want bool
	}{
		{"nil", nil, false},
		{"empty", str(""), false},
		{"whitespace", str(" \t\n "), false},
		{"text", str("Harper Lee"), true},
		{"padded text", str("  x  "), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NotBlank(tt.in))
		})
	}
}

func TestValidator_FirstErrorWins(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "title", "must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	v.Check(false, "title", "second message")
	v.AddError("author", "must be provided")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{
		"title":  "must be provided",
		"author": "must be provided",
	}, v.Errors)
}
