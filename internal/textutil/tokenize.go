package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	wordPattern     = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)
	letterPattern   = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentencePattern = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// Words lowercases text and returns every run of two or more letters, digits
// or underscores. Letters outside ASCII are word characters too.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// Letters lowercases text and returns the letter tokens, stop-words removed.
func Letters(text string) []string {
	raw := letterPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if IsStopWord(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Sentences splits text into sentences ending with '.', '!' or '?'.
func Sentences(text string) []string {
	return sentencePattern.FindAllString(text, -1)
}

// SignificantWords splits text on whitespace and keeps lowercased words longer
// than three runes made only of letters. Order and duplicates are preserved.
func SignificantWords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if IsSignificant(f) {
			out = append(out, f)
		}
	}
	return out
}

// IsSignificant reports whether w is longer than three runes and all letters.
func IsSignificant(w string) bool {
	if utf8.RuneCountInString(w) <= 3 {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
