package models

import (
	"net/mail"
	"strings"
)

// ValidEmail reports whether s is a bare address such as "ann@example.com".
// Display-name forms ("Ann <ann@example.com>") are rejected.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".")
}
