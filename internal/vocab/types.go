package vocab

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// WordPair is one vocabulary item: the word to learn and its translation.
// Two pairs with the same Source are the same item.
type WordPair struct {
	Source string
	Target string
}

// NewWordPair builds a pair with the source case-normalized and both sides
// trimmed and NFC-normalized, so composed and decomposed diacritics compare equal.
func NewWordPair(source, target string) WordPair {
	return WordPair{
		Source: NormalizeSource(source),
		Target: NormalizeTarget(target),
	}
}

// NormalizeSource trims, NFC-normalizes and lower-cases a source word.
func NormalizeSource(s string) string {
	return strings.ToLower(NormalizeTarget(s))
}

// NormalizeTarget trims and NFC-normalizes a translation.
func NormalizeTarget(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// SameItem reports whether p and other are the same vocabulary item.
func (p WordPair) SameItem(other WordPair) bool {
	return p.Source == other.Source
}

// String renders the pair in lesson line format.
func (p WordPair) String() string {
	return p.Source + Separator + p.Target
}

// Lesson is a titled, ordered list of pairs.
type Lesson struct {
	// Key identifies the lesson for completion tracking (usually the file name).
	Key   string
	Title string
	Pairs []WordPair
}

// Len returns the number of pairs in the lesson.
func (l *Lesson) Len() int {
	return len(l.Pairs)
}
