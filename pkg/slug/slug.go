// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns display names into ASCII file and URL names.
//
// Export downloads are named after the tree ("Släkten Ådahl" becomes
// "slakten-adahl.ged"), so Nordic letters are folded to their base letter.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// separators matches any run of characters outside [a-z0-9].
	separators = regexp.MustCompile(`[^a-z0-9]+`)

	// folds covers letters that do not decompose under NFD.
	folds = strings.NewReplacer("ø", "o", "Ø", "o", "æ", "ae", "Æ", "ae", "ß", "ss", "đ", "d", "Đ", "d", "ł", "l", "Ł", "l")
)

// From converts an arbitrary Unicode string into a lowercase ASCII slug.
//
//  1. Fold letters without a decomposition (ø → o, æ → ae).
//  2. Decompose (NFD) and drop combining marks (å → a).
//  3. Lowercase, then join the remaining alphanumeric runs with hyphens.
func From(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, folds.Replace(s))
	if err != nil {
		result = s
	}

	result = separators.ReplaceAllString(strings.ToLower(result), "-")
	return strings.Trim(result, "-")
}
