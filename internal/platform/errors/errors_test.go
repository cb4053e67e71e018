package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeRateLimited, http.StatusTooManyRequests},
		{ErrorCode(999), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Errorf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	t.Parallel()

	if ErrorCodeInvalidArgument.String() != "invalid_argument" || ErrorCode(999).String() != "code(999)" {
		t.Fatalf("names = %q %q", ErrorCodeInvalidArgument, ErrorCode(999))
	}
}

func TestError_Chain(t *testing.T) {
	t.Parallel()

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	cause := stderrs.New("connection reset")
	err := fmt.Errorf("list: %w", Wrap(cause, ErrorCodeUnavailable, "caches unavailable"))

	if !IsCode(err, ErrorCodeUnavailable) || HTTPStatus(err) != http.StatusServiceUnavailable {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if Root(err) != cause || !stderrs.Is(err, cause) {
		t.Fatal("cause should stay reachable")
	}
	if got := err.Error(); got != "list: caches unavailable: connection reset" {
		t.Fatalf("message = %q", got)
	}
	if Root(nil) != nil {
		t.Fatal("Root(nil) must be nil")
	}

	foreign := stderrs.New("plain")
	if CodeOf(foreign) != ErrorCodeUnknown {
		t.Fatal("foreign errors are unknown")
	}
	if _, ok := As(foreign); ok {
		t.Fatal("As must not match a foreign error")
	}
}

func TestWithFieldAndOp_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := InvalidArgf("invalid geocode %q", "../x")
	withField := WithField(base, "geocode")
	withOp := WithOp(withField, "caches.Get")

	b, _ := As(base)
	f, _ := As(withField)
	o, _ := As(withOp)
	if b.Field() != "" || f.Field() != "geocode" || o.Field() != "geocode" || o.Op() != "caches.Get" || f.Op() != "" {
		t.Fatalf("base=%+v field=%+v op=%+v", b, f, o)
	}

	plain := stderrs.New("x")
	if WithField(plain, "f") != plain || WithOp(plain, "op") != plain {
		t.Fatal("foreign errors pass through unchanged")
	}
}

func TestWire(t *testing.T) {
	t.Parallel()

	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	w := WireFrom(WithField(Wrap(stderrs.New("driver detail"), ErrorCodeDB, "store failed"), "name"))
	if w.Code != ErrorCodeDB || w.Message != "store failed" || w.Field != "name" {
		t.Fatalf("wire = %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
}

func TestSugar(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("cache %s", "GC1"), ErrorCodeNotFound},
		{InvalidArgf("bad"), ErrorCodeInvalidArgument},
		{JSONErrf("bad"), ErrorCodeJSON},
		{PanicErrf("bad"), ErrorCodePanic},
		{Unavailablef("bad"), ErrorCodeUnavailable},
		{ErrNotFound, ErrorCodeNotFound},
	}
	for _, c := range cases {
		if !IsCode(c.err, c.code) {
			t.Errorf("%v: want %v", c.err, c.code)
		}
	}
	if NotFoundf("cache %s", "GC1").Error() != "cache GC1" {
		t.Fatal("format not applied")
	}
}
