package vocab

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Separator splits the source word from its translation on a lesson line.
const Separator = " - "

// ParseOptions controls how a lesson file is read.
type ParseOptions struct {
	// Titled treats the first non-blank line as the lesson title.
	Titled bool

	// Logger receives warnings for skipped lines and duplicate sources.
	// Nil discards them.
	Logger logrus.FieldLogger
}

// ParseResult is the outcome of parsing a lesson.
type ParseResult struct {
	Lesson  *Lesson
	Skipped []MalformedLine

	// Duplicates lists sources that appear more than once. They are kept
	// as distinct entries.
	Duplicates []string
}

// ParseLesson reads a lesson from r. key identifies the lesson; in untitled
// mode the title is derived from it.
func ParseLesson(r io.Reader, key string, opts ParseOptions) (*Lesson, error) {
	res, err := Parse(r, key, opts)
	if err != nil {
		return nil, err
	}
	return res.Lesson, nil
}

// Parse reads a lesson from r and reports what was skipped.
func Parse(r io.Reader, key string, opts ParseOptions) (*ParseResult, error) {
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	log = log.WithField("lesson", key)

	res := &ParseResult{Lesson: &Lesson{Key: key}}
	titleSeen := !opts.Titled

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !titleSeen {
			res.Lesson.Title = NormalizeTarget(line)
			titleSeen = true
			continue
		}

		pair, ok := parseLine(line)
		if !ok {
			bad := MalformedLine{Line: lineNo, Text: line}
			res.Skipped = append(res.Skipped, bad)
			log.WithField("line", lineNo).Warnf("skipping malformed vocabulary line: %q", line)
			continue
		}
		res.Lesson.Pairs = append(res.Lesson.Pairs, pair)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lesson %s: %w", key, err)
	}

	if len(res.Lesson.Pairs) == 0 {
		return nil, fmt.Errorf("lesson %s: %w", key, ErrParse)
	}
	if res.Lesson.Title == "" {
		res.Lesson.Title = titleFromKey(key)
	}

	dups := lo.FindDuplicatesBy(res.Lesson.Pairs, func(p WordPair) string {
		return p.Source
	})
	res.Duplicates = pairList(dups).sources()
	for _, src := range res.Duplicates {
		log.WithField("source", src).Warn("duplicate source in lesson, drilling each entry separately")
	}

	return res, nil
}

// parseLine splits a "source - target" line. Lines with zero or several
// separators, or an empty side, are rejected.
func parseLine(line string) (WordPair, bool) {
	parts := strings.Split(line, Separator)
	if len(parts) != 2 {
		return WordPair{}, false
	}
	pair := NewWordPair(parts[0], parts[1])
	if pair.Source == "" || pair.Target == "" {
		return WordPair{}, false
	}
	return pair, true
}

func titleFromKey(key string) string {
	base := filepath.Base(key)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Format renders a lesson in titled line format, ready to be written to a
// lesson file.
func Format(l *Lesson) []byte {
	var b bytes.Buffer
	b.WriteString(l.Title)
	b.WriteString("\n")
	for _, p := range l.Pairs {
		b.WriteString(p.String())
		b.WriteString("\n")
	}
	return b.Bytes()
}

type pairList []WordPair

func (ps pairList) sources() []string {
	return lo.Map(ps, func(p WordPair, _ int) string { return p.Source })
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
