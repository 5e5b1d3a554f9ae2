package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// simpleEmail mirrors the browser-side check: something@something.something
// with no whitespace and a single @ before the domain.
var simpleEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// v is the package-level singleton validator. Custom tags are registered in
// init() before the first call to Struct.
var v = validator.New(validator.WithRequiredStructEnabled())

func init() {
	if err := v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return simpleEmail.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	// max_bytes=N bounds the UTF-8 byte length, unlike max which counts runes.
	if err := v.RegisterValidation("max_bytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= n
	}); err != nil {
		panic(err)
	}
}

// FieldError names the struct field and the tag it failed.
type FieldError struct {
	Field string
	Tag   string
}

// Error is returned by Struct when one or more fields fail validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field, fe.Tag))
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any field failed the given tag.
func (e *Error) Has(tag string) bool {
	for _, fe := range e.Fields {
		if fe.Tag == tag {
			return true
		}
	}
	return false
}

// Struct validates the given struct using its validate tags.
// Tag failures are returned as *Error; anything else is returned unchanged.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}
