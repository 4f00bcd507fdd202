// Copyright (c) 2026 DSMovie. All rights reserved.

// Package textnorm normalizes Unicode text for fold-insensitive matching.
//
// # Usage
//
// The catalog's title filter matches case-insensitively and ignores accents,
// so "leon" finds "Léon" and "AMELIE" finds "Amélie". This package provides
// the shared normalization used by the filter.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts a Unicode string into a lowercase, accent-stripped form
// suitable for substring comparison.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, s)
	if err != nil {
		// Fall back to plain lowercasing for malformed input.
		return strings.ToLower(s)
	}
	return strings.ToLower(result)
}

// Contains reports whether haystack contains needle after folding both.
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
