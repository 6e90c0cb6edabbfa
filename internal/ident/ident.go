// Package ident generates opaque unique identifiers for domain records.
package ident

import "github.com/gofrs/uuid/v5"

// New returns a fresh random identifier. Identifiers are opaque strings;
// callers must not parse them.
func New() string {
	return uuid.Must(uuid.NewV4()).String()
}
