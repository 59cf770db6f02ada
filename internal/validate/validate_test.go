package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNonEmpty(t *testing.T) {
	assert.True(t, IsNonEmpty("users"))
	assert.True(t, IsNonEmpty("  a "))
	assert.False(t, IsNonEmpty(""))
	assert.False(t, IsNonEmpty("   \t"))
}

func TestIsWellFormedURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://api.example.com/endpoint", true},
		{"http://localhost:5000/api", true},
		{"ftp://files.example.com", false},
		{"api.example.com/endpoint", false},
		{"https://", false},
		{"", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWellFormedURL(tt.input))
		})
	}
}

func TestIsWellFormedEmail(t *testing.T) {
	assert.True(t, IsWellFormedEmail("ada@example.com"))
	assert.False(t, IsWellFormedEmail("ada@"))
	assert.False(t, IsWellFormedEmail("ada.example.com"))
	assert.False(t, IsWellFormedEmail(""))
}

func TestPasswordsMatch(t *testing.T) {
	assert.True(t, PasswordsMatch("secret1", "secret1"))
	assert.False(t, PasswordsMatch("abc", "abcd"))
	assert.True(t, PasswordsMatch("", ""))
}

func TestMeetsMinLength(t *testing.T) {
	assert.False(t, MeetsMinLength("ab12", 6))
	assert.True(t, MeetsMinLength("abc123", 6))
	assert.True(t, MeetsMinLength("", 0))
	assert.True(t, MeetsMinLength("ünïcø", 5))
}

type sample struct {
	Server   string `yaml:"server" validate:"required,endpoint_url"`
	PageSize int    `yaml:"page_size" validate:"min=1,max=100"`
	Nested   struct {
		Mode string `yaml:"mode" validate:"oneof=a b"`
	} `yaml:"nested"`
}

func TestStruct(t *testing.T) {
	s := sample{Server: "localhost", PageSize: 0}
	s.Nested.Mode = "c"

	err := Struct(s)
	require.Error(t, err)

	var fieldErrs FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	require.Len(t, fieldErrs, 3)

	paths := []string{fieldErrs[0].FieldPath, fieldErrs[1].FieldPath, fieldErrs[2].FieldPath}
	assert.ElementsMatch(t, []string{"server", "page_size", "nested.mode"}, paths)
	assert.Contains(t, err.Error(), "validation failed with 3 error(s)")
}

func TestStruct_Valid(t *testing.T) {
	s := sample{Server: "https://api.example.com", PageSize: 10}
	s.Nested.Mode = "a"
	assert.NoError(t, Struct(s))
}
