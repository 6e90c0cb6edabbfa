// Package validation holds pure predicates over user- and todo-facing input.
//
// Predicates only answer yes/no; the Validate* helpers map failures to the
// user-visible message catalogue.
package validation

import (
	"regexp"
	"strings"
)

const (
	// MinPasswordLen is the minimum accepted password length.
	MinPasswordLen = 6
	// MaxTitleLen is the maximum todo title length.
	MaxTitleLen = 200
	// MaxDescriptionLen is the maximum todo description length.
	MaxDescriptionLen = 1000
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// ValidUsername reports whether s is 3-20 alphanumeric/underscore characters.
func ValidUsername(s string) bool { return usernameRe.MatchString(s) }

// ValidPassword reports whether s meets the minimum length.
func ValidPassword(s string) bool { return len(s) >= MinPasswordLen }

// ValidTodoTitle reports whether the trimmed title is 1-200 characters.
func ValidTodoTitle(s string) bool {
	t := strings.TrimSpace(s)
	return len(t) >= 1 && len(t) <= MaxTitleLen
}

// ValidTodoDescription reports whether the description fits the limit.
// An empty description is valid.
func ValidTodoDescription(s string) bool { return len(s) <= MaxDescriptionLen }

// User-visible validation messages.
const (
	MsgEmailRequired      = "Email is required"
	MsgEmailInvalid       = "Please enter a valid email address"
	MsgPasswordRequired   = "Password is required"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgUsernameRequired   = "Username is required"
	MsgUsernameInvalid    = "Username must be 3-20 characters and contain only letters, numbers, and underscores"
	MsgFirstNameRequired  = "First name is required"
	MsgLastNameRequired   = "Last name is required"
	MsgTitleRequired      = "Todo title is required"
	MsgTitleTooLong       = "Title must be 200 characters or less"
	MsgDescriptionTooLong = "Description must be 1000 characters or less"
)

// Errors maps a field name to its first validation failure.
// An empty map means the input is valid.
type Errors map[string]string

// ValidateLogin checks login credentials.
func ValidateLogin(username, password string) Errors {
	errs := Errors{}
	switch {
	case username == "":
		errs["username"] = MsgUsernameRequired
	case !ValidUsername(username):
		errs["username"] = MsgUsernameInvalid
	}
	switch {
	case password == "":
		errs["password"] = MsgPasswordRequired
	case !ValidPassword(password):
		errs["password"] = MsgPasswordTooShort
	}
	return errs
}

// ValidateSignup checks registration input.
func ValidateSignup(username, email, password, firstName, lastName string) Errors {
	errs := ValidateLogin(username, password)
	switch {
	case email == "":
		errs["email"] = MsgEmailRequired
	case !ValidEmail(email):
		errs["email"] = MsgEmailInvalid
	}
	if strings.TrimSpace(firstName) == "" {
		errs["firstName"] = MsgFirstNameRequired
	}
	if strings.TrimSpace(lastName) == "" {
		errs["lastName"] = MsgLastNameRequired
	}
	return errs
}

// ValidateTodo checks a todo's title and description.
func ValidateTodo(title, description string) Errors {
	errs := Errors{}
	switch {
	case strings.TrimSpace(title) == "":
		errs["title"] = MsgTitleRequired
	case len(title) > MaxTitleLen:
		errs["title"] = MsgTitleTooLong
	}
	if len(description) > MaxDescriptionLen {
		errs["description"] = MsgDescriptionTooLong
	}
	return errs
}
