package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "cgeo/internal/platform/errors"
)

type cacheIn struct {
	Geocode string `json:"geocode" validate:"required,geocode"`
	Pattern string `json:"pattern,omitempty" validate:"omitempty,regexp"`
	Limit   int    `json:"limit" validate:"min=0,max=100"`
	Note    string `json:"-" validate:"max=3"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSON(t *testing.T) {
	in, err := JSON[cacheIn](post(`{"geocode":"gc12ab","pattern":"a(b)c","limit":5}`))
	if err != nil || in.Geocode != "gc12ab" || in.Limit != 5 {
		t.Fatalf("in=%+v err=%v", in, err)
	}

	for body, want := range map[string]perr.ErrorCode{
		``:                                perr.ErrorCodeJSON,
		`[1,2]`:                           perr.ErrorCodeJSON,
		`{"geocode":"GC1","extra":true}`:  perr.ErrorCodeJSON,
		`{"geocode":"GC1"}{"geocode":"x"}`: perr.ErrorCodeJSON,
		`{"geocode":"../etc"}`:            perr.ErrorCodeValidation,
	} {
		if _, err := JSON[cacheIn](post(body)); !perr.IsCode(err, want) {
			t.Errorf("%q: want %v, got %v", body, want, err)
		}
	}
}

func TestStruct_Messages(t *testing.T) {
	cases := []struct {
		in    cacheIn
		field string
		msg   string
	}{
		{cacheIn{}, "geocode", "geocode is a required field"},
		{cacheIn{Geocode: "G"}, "geocode", "geocode must be a geocode like GC12AB"},
		{cacheIn{Geocode: "GC1", Pattern: "a("}, "pattern", "pattern must be a valid regular expression"},
		{cacheIn{Geocode: "GC1", Limit: 101}, "limit", "limit must be at most 100"},
		{cacheIn{Geocode: "GC1", Limit: -1}, "limit", "limit must be at least 0"},
		{cacheIn{Geocode: "GC1", Note: "long"}, "Note", "Note must be at most 3"},
	}
	for _, c := range cases {
		err := Struct(c.in)
		e, ok := perr.As(err)
		if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != c.field || err.Error() != c.msg {
			t.Errorf("%+v: field=%q err=%v", c.in, e.Field(), err)
		}
	}
	if err := Struct(cacheIn{Geocode: " GC1 "}); err != nil {
		t.Fatalf("surrounding space is tolerated: %v", err)
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	if err := Struct(42); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}
