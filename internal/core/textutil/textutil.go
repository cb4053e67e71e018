// Package textutil holds the small text helpers shared by parsers, storage and the API
// Every function is pure and safe for concurrent use, except the Collator values it hands out
package textutil

import (
	"fmt"
	"hash/crc32"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// reControl matches ASCII control characters (0x00-0x1F and 0x7F)
var reControl = regexp.MustCompile(`[[:cntrl:]]`)

// DefaultLocale is the locale used by Collator, set once during startup
var DefaultLocale = language.English

// GetMatch searches re in data and returns the given group of the first match,
// or of the last match when last is set
// Control characters in the captured text become spaces and trim strips the edges
// def is returned when data is nil, nothing matches or the group did not participate
// A group index the pattern does not define panics once there is text to match
// With last set an empty match right after another match is skipped, so a*
// over "baaa" yields "aaa" rather than the trailing empty match
func GetMatch(data *string, re *regexp.Regexp, trim bool, group int, def string, last bool) string {
	if out, ok := FindMatch(data, re, trim, group, last); ok {
		return out
	}
	return def
}

// FindMatch is GetMatch without a default, ok is false where GetMatch would return def
func FindMatch(data *string, re *regexp.Regexp, trim bool, group int, last bool) (string, bool) {
	if data == nil {
		return "", false
	}
	if group < 0 || group > re.NumSubexp() {
		panic(fmt.Sprintf("textutil: group %d out of range for %q", group, re.String()))
	}

	var loc []int
	if last {
		all := re.FindAllStringSubmatchIndex(*data, -1)
		if len(all) == 0 {
			return "", false
		}
		loc = all[len(all)-1]
	} else {
		loc = re.FindStringSubmatchIndex(*data)
		if loc == nil {
			return "", false
		}
	}

	start, end := loc[2*group], loc[2*group+1]
	if start < 0 {
		return "", false
	}

	// clone so the result does not pin the whole input in memory
	out := strings.Clone(reControl.ReplaceAllLiteralString((*data)[start:end], " "))
	if trim {
		out = trimASCII(out)
	}
	return out, true
}

// Match returns group 1 of the first match of re in data or def
func Match(data string, re *regexp.Regexp, trim bool, def string) string {
	return GetMatch(&data, re, trim, 1, def, false)
}

// MatchTrimmed returns the trimmed group 1 of the first match of re in data or def
func MatchTrimmed(data string, re *regexp.Regexp, def string) string {
	return GetMatch(&data, re, true, 1, def, false)
}

// Matches reports whether re occurs anywhere in data, nil data never matches
func Matches(data *string, re *regexp.Regexp) bool {
	return data != nil && re.MatchString(*data)
}

// ReplaceWhitespace turns every run of ' ', '\n', '\r' and '\t' into a single space
// A leading run is dropped entirely, a trailing run leaves one space behind
func ReplaceWhitespace(data string) string {
	if data == "" {
		return data
	}
	var b strings.Builder
	b.Grow(len(data))
	lastWasWhitespace := true
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch c {
		case ' ', '\n', '\r', '\t':
			if !lastWasWhitespace {
				b.WriteByte(' ')
			}
			lastWasWhitespace = true
		default:
			b.WriteByte(c)
			lastWasWhitespace = false
		}
	}
	return b.String()
}

// ContainsHTML is a naive check for markup that needs an HTML renderer
// anything with '<' or '&' qualifies
func ContainsHTML(s string) bool {
	return strings.ContainsAny(s, "<&")
}

// RemoveControlCharacters replaces control characters with spaces and trims the result
func RemoveControlCharacters(s string) string {
	return trimASCII(reControl.ReplaceAllLiteralString(s, " "))
}

// Checksum is a CRC-32 (IEEE) over the UTF-8 bytes of s
// use it for change detection only, never for integrity or security
func Checksum(s string) uint32 {
	return crc32.ChecksumIEEE([]byte(s))
}

// Collator returns a fresh collator for DefaultLocale
func Collator() *collate.Collator { return NewCollator(DefaultLocale) }

// NewCollator returns a collator for tag that ignores case and diacritics
// Collators keep scratch buffers, so do not share one between goroutines
func NewCollator(tag language.Tag) *collate.Collator {
	return collate.New(tag, collate.IgnoreCase, collate.IgnoreDiacritics)
}

// SortStrings sorts items in place with a fresh collator for tag
// strings the collator considers equal keep a byte order, so the result is deterministic
func SortStrings(tag language.Tag, items []string) {
	col := NewCollator(tag)
	sort.SliceStable(items, func(i, j int) bool {
		if c := col.CompareString(items[i], items[j]); c != 0 {
			return c < 0
		}
		return items[i] < items[j]
	})
}

// TrimSpanned drops trailing whitespace, e.g. the paragraph breaks left over
// after rendering HTML, and keeps the concrete string type of the input
// no-break spaces count as text, a trailing &nbsp; survives
func TrimSpanned[T ~string](s T) T {
	i := strings.LastIndexFunc(string(s), func(r rune) bool { return !isBreakingSpace(r) })
	if i < 0 {
		return s[:0]
	}
	_, size := utf8.DecodeRuneInString(string(s[i:]))
	return s[:i+size]
}

// trimASCII strips space and control bytes up to U+0020 from both ends,
// no-break spaces and other Unicode spaces are kept
func trimASCII(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

// isBreakingSpace is a Unicode separator or an ASCII layout control,
// the no-break spaces U+00A0, U+2007 and U+202F are not
func isBreakingSpace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	case '\t', '\n', '\v', '\f', '\r', '\x1c', '\x1d', '\x1e', '\x1f':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}
