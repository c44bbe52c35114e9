package validation

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/aatuh/ulid-toolkit/ports"
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a validation error with field-specific details.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Fields flattens single and multiple validation errors.
func Fields(err error) []ValidationError {
	switch e := err.(type) {
	case ValidationError:
		return []ValidationError{e}
	case ValidationErrors:
		return e.Errors
	}
	return nil
}

// playgroundValidator adapts go-playground/validator to ports.Validator.
type playgroundValidator struct {
	validator *validator.Validate
}

// New returns the go-playground-backed validator. Field names in errors
// follow json tags. ULID text is checked by ulid.Parse in the handlers,
// not by a tag.
func New() ports.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("json"), ",")[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &playgroundValidator{validator: v}
}

func (p *playgroundValidator) Validate(ctx context.Context, value any) error {
	if value == nil {
		return ValidationError{Message: "value is required"}
	}
	if isStruct(value) {
		return convertError(p.validator.StructCtx(ctx, value))
	}
	return nil
}

func (p *playgroundValidator) ValidateStruct(ctx context.Context, obj any) error {
	if obj == nil {
		return ValidationError{Message: "object is required"}
	}
	return convertError(p.validator.StructCtx(ctx, obj))
}

func isStruct(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return false
	}
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	return rv.IsValid() && rv.Kind() == reflect.Struct
}

func convertError(err error) error {
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	errs := ValidationErrors{}
	for _, fe := range ve {
		errs.Errors = append(errs.Errors, ValidationError{
			Field:   fe.Field(),
			Message: buildMessage(fe),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}
	if len(errs.Errors) == 1 {
		return errs.Errors[0]
	}
	return errs
}

func buildMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be %s in length", fe.Param())
	case "hexadecimal":
		return "must be hexadecimal"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed '%s'=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
