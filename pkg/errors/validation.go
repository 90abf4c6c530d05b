package errors

import (
	"strings"
	"unicode"
)

// ValidateSectionID validates a section identifier arriving from an outer
// surface (API request, sections file). IDs key positions, cache
// fingerprints, and diff reports, so they must be stable and printable.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateSectionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSection, "section id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidSection, "section id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSection, "section id contains control characters")
		}
	}
	return nil
}

// ValidateLayoutName validates a human-readable name for a saved layout.
// Names appear in listings and file paths, so path separators and control
// characters are rejected.
func ValidateLayoutName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "layout name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "layout name too long (max 128 characters)")
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "layout name cannot contain path separators")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "layout name contains control characters")
		}
	}
	return nil
}
