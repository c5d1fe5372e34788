package domain

import "unicode"

// IndexFold returns the rune offset of the first case-insensitive
// occurrence of substr in s, or -1. Offsets are in runes, not bytes.
// Case is folded rune by rune so offsets line up with the original text.
func IndexFold(s, substr string) int {
	return IndexFoldRunes([]rune(s), []rune(substr))
}

// IndexFoldRunes is IndexFold over rune slices.
func IndexFoldRunes(s, substr []rune) int {
	n := len(substr)
	if n == 0 {
		return 0
	}
	needle := make([]rune, n)
	for i, r := range substr {
		needle[i] = unicode.ToLower(r)
	}

outer:
	for i := 0; i+n <= len(s); i++ {
		for j := 0; j < n; j++ {
			if unicode.ToLower(s[i+j]) != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

// ContainsFold reports whether substr occurs in s ignoring case.
func ContainsFold(s, substr string) bool {
	return IndexFold(s, substr) >= 0
}

// Fold lowercases s rune by rune, the same fold IndexFold applies. Each
// rune maps to exactly one rune, so a substring of Fold(s) lines up with
// a case-insensitive match in s.
func Fold(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return string(runes)
}
