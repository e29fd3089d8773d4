// Package text provides utilities for text processing and analysis.
// This package includes reusable functions for character counting and truncation
// that behave consistently across AI providers and content sources.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This function correctly handles multi-byte characters including Korean, Japanese,
// emoji, and other Unicode characters by counting runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")          // returns 5 (ASCII text)
//	CountRunes("안녕하세요")       // returns 5 (Korean text)
//	CountRunes("hello세계")       // returns 7 (mixed text)
//	CountRunes("Hello👋")         // returns 6 (text with emoji)
//	CountRunes("")               // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}

// TruncateRunes returns the first max runes of the given text.
// Counting runes instead of bytes guarantees a multi-byte character is never
// split in the middle, which would produce invalid UTF-8 in the output.
// Text at or below the limit is returned unchanged.
//
// Examples:
//
//	TruncateRunes("hello", 3)       // returns "hel"
//	TruncateRunes("안녕하세요", 2)    // returns "안녕"
//	TruncateRunes("short", 100)     // returns "short"
func TruncateRunes(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
