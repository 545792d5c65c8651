package validator

import (
	"bilateral/shared/failure"
	"encoding/json"
	"io"
	"reflect"
	"regexp"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const msgInvalidBody = "Invalid request body"

// Sanitizer is implemented by request bodies that normalize their fields
// (for example trimming whitespace) before validation runs.
type Sanitizer interface {
	Sanitize()
}

var (
	validate  *val.Validate
	clockExpr = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	err := validate.RegisterValidation("hhmm", func(fl val.FieldLevel) bool {
		return clockExpr.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Decode reads a JSON body into data. Syntax errors are reported as a bad request.
func Decode[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		log.Debug().Err(err).Msg("failed to decode request body")

		return failure.BadRequestFromString(msgInvalidBody) //nolint:wrapcheck
	}

	return nil
}

// Validate reads from the given io.Reader into the given struct, sanitizes it when the
// struct implements Sanitizer, and then validates it with the validator package.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := Decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if sanitizer, ok := any(data).(Sanitizer); ok {
		sanitizer.Sanitize()
	}

	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
