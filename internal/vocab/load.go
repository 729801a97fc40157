package vocab

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// lessonFilePattern names lesson files in a lessons directory: word1.txt, word2.txt, ...
const lessonFilePattern = "word%d.txt"

// LoadFile reads a single lesson file. The lesson key is the file's base name.
func LoadFile(path string, titled bool, log logrus.FieldLogger) (*Lesson, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lesson: %w", err)
	}
	defer f.Close()

	return ParseLesson(f, filepath.Base(path), ParseOptions{Titled: titled, Logger: log})
}

// LoadDir discovers word1.txt, word2.txt, ... in dir and loads them in order,
// stopping at the first missing index. Files without valid pairs are skipped.
func LoadDir(dir string, log logrus.FieldLogger) ([]*Lesson, error) {
	if log == nil {
		log = discardLogger()
	}

	var lessons []*Lesson
	for i := 1; ; i++ {
		name := fmt.Sprintf(lessonFilePattern, i)
		path := filepath.Join(dir, name)

		lesson, err := LoadFile(path, true, log)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debugf("no more lesson files after %s", name)
				break
			}
			if errors.Is(err, ErrParse) {
				log.WithField("lesson", name).Warn("lesson file has no valid vocabulary, skipping")
				continue
			}
			log.WithError(err).WithField("lesson", name).Error("failed to read lesson, stopping discovery")
			break
		}
		lessons = append(lessons, lesson)
	}

	if len(lessons) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoLessons)
	}
	return lessons, nil
}

// NextLessonPath returns the path of the first unused lesson file name in dir.
func NextLessonPath(dir string) (string, error) {
	for i := 1; ; i++ {
		path := filepath.Join(dir, fmt.Sprintf(lessonFilePattern, i))
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
}

// WriteLesson writes l to path in titled line format.
func WriteLesson(path string, l *Lesson) error {
	if err := os.WriteFile(path, Format(l), 0o644); err != nil {
		return fmt.Errorf("write lesson: %w", err)
	}
	return nil
}
