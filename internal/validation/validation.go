// Package validation holds the shared struct validator and turns its errors into readable field messages.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/codalotl/framekit/internal/q/frame"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/q/uni"
	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// Get returns the shared validator. Besides the built-in tags it knows:
//   - color: a color ParseRGB accepts
//   - border: a built-in border style name
//   - width_mode: "modern" or "standard"
//   - color_depth: a name ParseColorDepth accepts
func Get() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			_, err := termformat.ParseRGB(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("border", func(fl validator.FieldLevel) bool {
			_, err := frame.LookupBorder(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("width_mode", func(fl validator.FieldLevel) bool {
			_, ok := uni.ParseWidthMode(fl.Field().String())
			return ok
		})

		_ = v.RegisterValidation("color_depth", func(fl validator.FieldLevel) bool {
			_, ok := termformat.ParseColorDepth(fl.Field().String())
			return ok
		})

		validateInst = v
	})
	return validateInst
}

// Error is a failed validation of one field.
type Error struct {
	Field   string // lowercased struct namespace, ex: "config.frame.border"
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Struct validates s and returns the first failure as an *Error.
func Struct(s any) error {
	return convert(Get().Struct(s))
}

func convert(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, ve.Tag(), ve.Param())
		}
		if s, ok := ve.Value().(string); ok && s != "" {
			msg += fmt.Sprintf(" (got %q)", s)
		}
		return &Error{Field: field, Message: msg, Err: err}
	}
	return &Error{Field: "", Message: err.Error(), Err: err}
}

func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}
