// Package htmltext renders cache listing HTML (names, descriptions, image captions) to plain text
package htmltext

import (
	"bytes"
	"strings"

	"cgeo/internal/core/textutil"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Text is rendered plain text, kept as its own type so callers do not feed it back into HTML sinks
type Text string

// String implements fmt.Stringer
func (t Text) String() string { return string(t) }

// FromHTML renders s to plain text
// inline whitespace collapses, <br> becomes a newline and block elements end with a blank line
// script and style content is dropped and entities are decoded
// Input without markup is returned as is
func FromHTML(s string) Text {
	if !textutil.ContainsHTML(s) {
		return Text(s)
	}

	b := make(renderBuf, 0, len(s))

	skip := 0
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail, either way render what we have
			return Text(b)
		case html.TextToken:
			if skip == 0 {
				b.inline(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); a {
			case atom.Script, atom.Style:
				skip++
			case atom.Br:
				b.newline()
			default:
				if isBlock(a) {
					b.block(false)
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); a {
			case atom.Script, atom.Style:
				if skip > 0 {
					skip--
				}
			default:
				if isBlock(a) {
					b.block(true)
				}
			}
		}
	}
}

// FromHTMLTrimmed renders s and drops the trailing paragraph breaks block elements leave behind
func FromHTMLTrimmed(s string) Text {
	return textutil.TrimSpanned(FromHTML(s))
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Tr, atom.Table, atom.Blockquote,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// renderBuf is the output of FromHTML
type renderBuf []byte

// inline appends text with HTML whitespace rules: runs collapse to one space and
// no space is emitted at the start of a line
func (b *renderBuf) inline(text []byte) {
	for _, c := range text {
		switch c {
		case ' ', '\n', '\r', '\t', '\f':
			if !b.lineStart() && b.last() != ' ' {
				*b = append(*b, ' ')
			}
		default:
			*b = append(*b, c)
		}
	}
}

// newline ends the current line, dropping a dangling space
func (b *renderBuf) newline() {
	if b.last() == ' ' {
		*b = (*b)[:len(*b)-1]
	}
	*b = append(*b, '\n')
}

// block ends the current line, closing a block adds a blank line
func (b *renderBuf) block(closing bool) {
	if len(*b) == 0 {
		return
	}
	if !b.lineStart() {
		b.newline()
	}
	if closing && !bytes.HasSuffix(*b, []byte("\n\n")) {
		*b = append(*b, '\n')
	}
}

func (b renderBuf) lineStart() bool { return len(b) == 0 || b.last() == '\n' }

func (b renderBuf) last() byte {
	if len(b) == 0 {
		return 0
	}
	return b[len(b)-1]
}
