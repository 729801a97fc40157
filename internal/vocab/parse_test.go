package vocab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWordPair_Normalizes(t *testing.T) {
	// "mèo" with a combining grave accent (NFD) must equal the composed form.
	decomposed := "me\u0300o"
	p := NewWordPair("  Cat ", decomposed+"  ")

	assert.Equal(t, "cat", p.Source)
	assert.Equal(t, "mèo", p.Target)
	assert.True(t, p.SameItem(WordPair{Source: "cat", Target: "other"}))
}

func TestParseLesson_Titled(t *testing.T) {
	input := "Animals\ncat - mèo\n\ndog - chó\nfish - cá\n"

	lesson, err := ParseLesson(strings.NewReader(input), "word1.txt", ParseOptions{Titled: true})
	require.NoError(t, err)

	assert.Equal(t, "word1.txt", lesson.Key)
	assert.Equal(t, "Animals", lesson.Title)
	assert.Equal(t, []WordPair{
		{Source: "cat", Target: "mèo"},
		{Source: "dog", Target: "chó"},
		{Source: "fish", Target: "cá"},
	}, lesson.Pairs)
}

func TestParseLesson_UntitledUsesFileName(t *testing.T) {
	lesson, err := ParseLesson(strings.NewReader("sun - mặt trời\n"), "nature.txt", ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, "nature", lesson.Title)
	require.Len(t, lesson.Pairs, 1)
	assert.Equal(t, "mặt trời", lesson.Pairs[0].Target)
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"Mixed",
		"cat - mèo",
		"no separator here",
		"a - b - c",
		" - empty source",
		"dog - chó",
	}, "\n")

	res, err := Parse(strings.NewReader(input), "mixed.txt", ParseOptions{Titled: true})
	require.NoError(t, err)

	assert.Len(t, res.Lesson.Pairs, 2)
	require.Len(t, res.Skipped, 3)
	assert.Equal(t, 3, res.Skipped[0].Line)
	assert.Equal(t, "a - b - c", res.Skipped[1].Text)
}

func TestParse_NoValidPairs(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		titled bool
	}{
		{"empty", "", false},
		{"title only", "Just a title\n", true},
		{"all malformed", "Title\nfoo\nbar baz\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLesson(strings.NewReader(tt.input), "x.txt", ParseOptions{Titled: tt.titled})
			require.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParse_DuplicateSourcesKept(t *testing.T) {
	input := "Dupes\nbank - ngân hàng\nBank - bờ sông\nriver - sông\n"

	res, err := Parse(strings.NewReader(input), "dupes.txt", ParseOptions{Titled: true})
	require.NoError(t, err)

	assert.Len(t, res.Lesson.Pairs, 3, "duplicates are tolerated, not removed")
	assert.Equal(t, []string{"bank"}, res.Duplicates)
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	lesson, err := ParseLesson(strings.NewReader("\ufeffGreetings\nhello - xin chào\n"), "g.txt", ParseOptions{Titled: true})
	require.NoError(t, err)
	assert.Equal(t, "Greetings", lesson.Title)
}

func TestFormat_RoundTripsThroughParser(t *testing.T) {
	orig := &Lesson{
		Key:   "word1.txt",
		Title: "Colors",
		Pairs: []WordPair{NewWordPair("red", "đỏ"), NewWordPair("blue", "xanh dương")},
	}

	parsed, err := ParseLesson(strings.NewReader(string(Format(orig))), "word1.txt", ParseOptions{Titled: true})
	require.NoError(t, err)
	assert.Equal(t, orig, parsed)
}

func writeLessonFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadDir_SequentialDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeLessonFile(t, dir, "word1.txt", "One\ncat - mèo\n")
	writeLessonFile(t, dir, "word2.txt", "Only a title\n")
	writeLessonFile(t, dir, "word3.txt", "Three\ndog - chó\n")
	// word4 missing: word5 must not be discovered.
	writeLessonFile(t, dir, "word5.txt", "Five\nfish - cá\n")

	lessons, err := LoadDir(dir, nil)
	require.NoError(t, err)

	require.Len(t, lessons, 2)
	assert.Equal(t, "word1.txt", lessons[0].Key)
	assert.Equal(t, "word3.txt", lessons[1].Key)
	assert.Equal(t, "Three", lessons[1].Title)
}

func TestLoadDir_Empty(t *testing.T) {
	_, err := LoadDir(t.TempDir(), nil)
	require.ErrorIs(t, err, ErrNoLessons)
}

func TestNextLessonPath(t *testing.T) {
	dir := t.TempDir()
	writeLessonFile(t, dir, "word1.txt", "One\ncat - mèo\n")
	writeLessonFile(t, dir, "word2.txt", "Two\ndog - chó\n")

	path, err := NextLessonPath(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "word3.txt"), path)

	lesson := &Lesson{Title: "Three", Pairs: []WordPair{NewWordPair("fish", "cá")}}
	require.NoError(t, WriteLesson(path, lesson))

	loaded, err := LoadFile(path, true, nil)
	require.NoError(t, err)
	assert.Equal(t, "word3.txt", loaded.Key)
	assert.Equal(t, lesson.Pairs, loaded.Pairs)
}
