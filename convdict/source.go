package convdict

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMalformedLine is returned by ParseLine for lines which do not follow the
// dictionary format.
var ErrMalformedLine = errors.New("malformed dictionary line")

// ParseLine splits a dictionary line into key and first candidate. Further
// candidates are discarded.
func ParseLine(line string) (key, value string, err error) {
	line = strings.TrimRight(line, "\r\n")
	key, candidates, found := strings.Cut(line, "\t")
	if !found || key == "" {
		return "", "", ErrMalformedLine
	}
	value, _, _ = strings.Cut(candidates, " ")
	if value == "" {
		return "", "", ErrMalformedLine
	}
	return key, value, nil
}

// Mapper converts strings, e.g. a Converter.
type Mapper interface {
	Convert(s string) string
}

// Source is a dictionary input. KeyMap and ValueMap, if set, are applied to
// keys and first candidates before filtering, which allows chaining
// dictionaries: a Traditional→Taiwan phrase list with KeyMap set to a
// Traditional→Simplified converter yields Simplified→Taiwan entries.
type Source struct {
	Name     string
	Reader   io.Reader
	KeyMap   Mapper
	ValueMap Mapper
}

// OpenSource opens a dictionary file as a source. The caller must close the
// returned closer.
func OpenSource(path string) (Source, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, nil, err
	}
	return Source{Name: path, Reader: f}, f, nil
}

// SourceStats counts what happened to the lines of a source.
type SourceStats struct {
	Lines     int // non-empty lines read
	Malformed int // lines not following the dictionary format
	Rejected  int // entries outside the allowed code point sets
	Accepted  int // entries stored
}

// readLines calls fn for every key/first-candidate pair of a source, after
// applying the source's mappers. A leading byte order mark is skipped.
func readLines(src Source, stats *SourceStats, fn func(key, value string)) error {
	r := transform.NewReader(src.Reader, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.Lines++
		key, value, err := ParseLine(line)
		if err != nil {
			stats.Malformed++
			tracer().Debugf("%s: rejecting line %d: %q", src.Name, stats.Lines, line)
			continue
		}
		if src.KeyMap != nil {
			key = src.KeyMap.Convert(key)
		}
		if src.ValueMap != nil {
			value = src.ValueMap.Convert(value)
		}
		fn(key, value)
	}
	return scanner.Err()
}
