// Package service contains the text workflows behind the API
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"cgeo/internal/core/htmltext"
	"cgeo/internal/core/textutil"
	perr "cgeo/internal/platform/errors"
	"cgeo/internal/services/api/text/domain"

	"golang.org/x/text/language"
)

// Service defines the service contract for text operations
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	locale language.Tag
}

// New creates a text service, locale is the default for Sort
func New(locale language.Tag) *Svc {
	if locale == language.Und {
		locale = textutil.DefaultLocale
	}
	return &Svc{locale: locale}
}

// Match applies textutil.FindMatch to the input
func (s *Svc) Match(_ context.Context, in domain.MatchInput) (domain.MatchOutput, error) {
	re, err := regexp.Compile(in.Pattern)
	if err != nil {
		return domain.MatchOutput{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "invalid pattern: %v", err), "pattern")
	}
	if in.Group > re.NumSubexp() {
		return domain.MatchOutput{}, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "pattern has %d groups, group %d requested", re.NumSubexp(), in.Group),
			"group",
		)
	}
	if v, ok := textutil.FindMatch(in.Text, re, in.Trim, in.Group, in.Last); ok {
		return domain.MatchOutput{Value: v, Matched: true}, nil
	}
	return domain.MatchOutput{Value: in.Default}, nil
}

// Normalize applies one normalization op
func (s *Svc) Normalize(_ context.Context, in domain.NormalizeInput) (domain.NormalizeOutput, error) {
	var v string
	switch in.Op {
	case domain.OpWhitespace:
		v = textutil.ReplaceWhitespace(in.Text)
	case domain.OpControl:
		v = textutil.RemoveControlCharacters(in.Text)
	case domain.OpTrim:
		v = textutil.TrimSpanned(in.Text)
	case domain.OpPlain:
		v = htmltext.FromHTMLTrimmed(in.Text).String()
	default:
		return domain.NormalizeOutput{}, perr.WithField(perr.InvalidArgf("unknown op %q", in.Op), "op")
	}
	return domain.NormalizeOutput{Value: v}, nil
}

// Inspect reports whether text holds markup and its checksum
func (s *Svc) Inspect(_ context.Context, in domain.InspectInput) (domain.InspectOutput, error) {
	sum := textutil.Checksum(in.Text)
	return domain.InspectOutput{
		ContainsHTML: textutil.ContainsHTML(in.Text),
		Checksum:     sum,
		ChecksumHex:  fmt.Sprintf("%08x", sum),
		Length:       len([]rune(in.Text)),
	}, nil
}

// Sort returns a collated copy of the items, the input is left untouched
func (s *Svc) Sort(_ context.Context, in domain.SortInput) (domain.SortOutput, error) {
	tag := s.locale
	if loc := strings.TrimSpace(in.Locale); loc != "" {
		t, err := language.Parse(loc)
		if err != nil {
			return domain.SortOutput{}, perr.WithField(perr.InvalidArgf("invalid locale %q", in.Locale), "locale")
		}
		tag = t
	}
	out := append([]string(nil), in.Items...)
	textutil.SortStrings(tag, out)
	if out == nil {
		out = []string{}
	}
	return domain.SortOutput{Items: out}, nil
}
