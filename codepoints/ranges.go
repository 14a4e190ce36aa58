package codepoints

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"
)

// Auxiliary holds the non-Han ranges kept in every converted font: ASCII,
// spacing modifiers, general punctuation, CJK radicals and symbols, Bopomofo,
// Kanbun, vertical and compatibility forms, and full-width forms.
var Auxiliary = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0020, Hi: 0x007E, Stride: 1},
		{Lo: 0x02B0, Hi: 0x02FF, Stride: 1},
		{Lo: 0x2002, Hi: 0x203B, Stride: 1},
		{Lo: 0x2E00, Hi: 0x2E7F, Stride: 1},
		{Lo: 0x2E80, Hi: 0x2EFF, Stride: 1},
		{Lo: 0x3000, Hi: 0x301C, Stride: 1},
		{Lo: 0x3100, Hi: 0x312F, Stride: 1},
		{Lo: 0x3190, Hi: 0x31BF, Stride: 1},
		{Lo: 0xFE10, Hi: 0xFE1F, Stride: 1},
		{Lo: 0xFE30, Hi: 0xFE4F, Stride: 1},
		{Lo: 0xFF01, Hi: 0xFF64, Stride: 1},
	},
	LatinOffset: 1,
}

// ParseRanges parses range specifications like "0020-007E" or "3000" (hex,
// optionally prefixed by "U+") into a range table.
func ParseRanges(specs []string) (*unicode.RangeTable, error) {
	var rs []rune
	for _, spec := range specs {
		lo, hi, isRange := strings.Cut(strings.TrimSpace(spec), "-")
		first, err := parseHex(lo)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			if last, err = parseHex(hi); err != nil {
				return nil, err
			}
		}
		if last < first {
			return nil, fmt.Errorf("invalid code point range %q", spec)
		}
		for r := first; r <= last; r++ {
			rs = append(rs, r)
		}
	}
	return rangetable.New(rs...), nil
}

func parseHex(s string) (rune, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "U+"), "u+")
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil || n > unicode.MaxRune {
		return 0, fmt.Errorf("invalid code point %q", s)
	}
	return rune(n), nil
}

// ReadReference reads a reference code point list: the first character of each
// line is taken, empty lines and lines starting with '#' are skipped.
func ReadReference(r io.Reader) (Set, error) {
	s := make(Set)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		line = strings.TrimPrefix(line, "\uFEFF")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, _ := utf8.DecodeRuneInString(line)
		if c == utf8.RuneError {
			continue
		}
		s.Add(c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	tracer().Debugf("reference list contains %d code points", s.Len())
	return s, nil
}
