package http

import (
	"cmp"
	"encoding/json"
	"mime"
	"net/http"

	pnet "cgeo/internal/platform/net"
	"cgeo/internal/platform/net/http/bind"
)

// Envelope is re-exported for swagger annotations in the modules
type Envelope = pnet.Envelope

// Response is what handlers return, Handle writes it
// an error Body becomes an error envelope, a File is written as is,
// anything else is wrapped as data
type Response struct {
	Status int
	Body   any
	Header http.Header
}

// File is a body written outside the envelope
type File struct {
	ContentType string
	// Name becomes an attachment filename when set
	Name  string
	Bytes []byte
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Status: http.StatusOK, Body: data} }

// NoContent is an empty 204
func NoContent() Response { return Response{Status: http.StatusNoContent} }

// Error lets the error code pick the status
func Error(err error) Response { return Response{Body: err} }

// Attachment is a 200 download
func Attachment(contentType, name string, b []byte) Response {
	return OK(File{ContentType: contentType, Name: name, Bytes: b})
}

// JSON writes v with status, it is also the writer the middleware uses for early replies
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Handle adapts a Response returning func
func Handle(fn func(*http.Request) Response) Handler {
	return func(w http.ResponseWriter, r *http.Request) { fn(r).write(w, r) }
}

// Call adapts a handler without a request body, a Response result is passed through
func Call(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return result(fn(r)) })
}

// Decode binds and validates a JSON body into T before calling fn
func Decode[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.JSON[T](r)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

func (resp Response) write(w http.ResponseWriter, r *http.Request) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())
	status := cmp.Or(resp.Status, http.StatusOK)

	switch body := resp.Body.(type) {
	case error:
		st, env := pnet.Failure(body, reqID)
		JSON(w, st, env)
	case File:
		w.Header().Set("Content-Type", body.ContentType)
		if body.Name != "" {
			w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": body.Name}))
		}
		w.WriteHeader(status)
		_, _ = w.Write(body.Bytes)
	default:
		if status == http.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		JSON(w, status, pnet.Success(status, body, reqID))
	}
}
