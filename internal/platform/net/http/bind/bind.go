// Package bind decodes JSON request bodies and validates them with struct tags
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "cgeo/internal/platform/errors"
	"cgeo/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps how much of a request body is read
const MaxBody = 4 << 20

var reGeocode = regexp.MustCompile(`^[A-Za-z0-9]{2,16}$`)

// rules are the tags the API adds on top of the validator built-ins
var rules = map[string]validator.Func{
	"geocode": func(fl validator.FieldLevel) bool {
		return reGeocode.MatchString(strings.TrimSpace(fl.Field().String()))
	},
	"regexp": func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	},
}

// messages replace the stock english texts, {0} is the field and {1} the param
var messages = map[string]string{
	"min":     "{0} must be at least {1}",
	"max":     "{0} must be at most {1}",
	"geocode": "{0} must be a geocode like GC12AB",
	"regexp":  "{0} must be a valid regular expression",
}

var (
	once  sync.Once
	valid *validator.Validate
	trans ut.Translator
)

func setup() {
	uni := ut.New(en.New())
	trans, _ = uni.GetTranslator("en")

	valid = validator.New(validator.WithRequiredStructEnabled())
	valid.RegisterTagNameFunc(jsonName)
	_ = entrans.RegisterDefaultTranslations(valid, trans)

	for tag, fn := range rules {
		_ = valid.RegisterValidation(tag, fn)
	}
	for tag, text := range messages {
		_ = valid.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field(), fe.Param())
				return msg
			},
		)
	}
}

// jsonName reports fields by their wire name
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "", "-":
		return f.Name
	}
	return name
}

// Validator is the shared validator, set up on first use
func Validator() *validator.Validate {
	once.Do(setup)
	return valid
}

// Struct validates v, the first failing field becomes a validation error naming it
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		fe := fields[0]
		return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(trans)), fe.Field())
	}
	logger.Get().Error().Err(err).Msg("validator misuse")
	return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
}

// JSON decodes one JSON value into T, rejecting unknown fields and trailing data, then validates it
func JSON[T any](r *http.Request) (T, error) {
	var v T
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, perr.JSONErrf("empty body")
		}
		return v, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return v, perr.JSONErrf("unexpected trailing data")
	}
	return v, Struct(v)
}
