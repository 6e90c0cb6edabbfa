package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"user@example.com", true},
		{"first.last@sub.domain.org", true},
		{"", false},
		{"no-at-sign.com", false},
		{"user@nodot", false},
		{"spaces in@example.com", false},
		{"user@@example.com", false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ValidEmail(tc.in), "email %q", tc.in)
	}
}

func TestValidUsername(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"bob", true},
		{"user_42", true},
		{strings.Repeat("a", 20), true},
		{"ab", false},
		{strings.Repeat("a", 21), false},
		{"has space", false},
		{"dash-ed", false},
		{"", false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ValidUsername(tc.in), "username %q", tc.in)
	}
}

func TestValidTodoTitle(t *testing.T) {
	require.True(t, ValidTodoTitle("Buy milk"))
	require.True(t, ValidTodoTitle(strings.Repeat("x", MaxTitleLen)))
	require.False(t, ValidTodoTitle(""))
	require.False(t, ValidTodoTitle("   "))
	require.False(t, ValidTodoTitle(strings.Repeat("x", MaxTitleLen+1)))
}

func TestValidateLogin(t *testing.T) {
	require.Empty(t, ValidateLogin("bob", "secret1"))

	errs := ValidateLogin("", "")
	require.Equal(t, MsgUsernameRequired, errs["username"])
	require.Equal(t, MsgPasswordRequired, errs["password"])

	errs = ValidateLogin("a!", "short")
	require.Equal(t, MsgUsernameInvalid, errs["username"])
	require.Equal(t, MsgPasswordTooShort, errs["password"])
}

func TestValidateSignup(t *testing.T) {
	require.Empty(t, ValidateSignup("bob", "bob@example.com", "secret1", "Bob", "Builder"))

	errs := ValidateSignup("bob", "", "secret1", "", " ")
	require.Equal(t, MsgEmailRequired, errs["email"])
	require.Equal(t, MsgFirstNameRequired, errs["firstName"])
	require.Equal(t, MsgLastNameRequired, errs["lastName"])
	require.NotContains(t, errs, "username")

	errs = ValidateSignup("bob", "not-an-email", "secret1", "Bob", "Builder")
	require.Equal(t, MsgEmailInvalid, errs["email"])
}

func TestValidateTodo(t *testing.T) {
	require.Empty(t, ValidateTodo("Buy milk", ""))

	errs := ValidateTodo("  ", "")
	require.Equal(t, MsgTitleRequired, errs["title"])

	errs = ValidateTodo(strings.Repeat("x", MaxTitleLen+1), strings.Repeat("y", MaxDescriptionLen+1))
	require.Equal(t, MsgTitleTooLong, errs["title"])
	require.Equal(t, MsgDescriptionTooLong, errs["description"])
}
