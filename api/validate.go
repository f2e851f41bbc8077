package api

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/arcfolio/backend/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct runs tag validation on a request-input struct and converts the
// first failure into a field-scoped 400.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errs.NewBadRequestErrorWithField("validation failed", lowerFirst(fe.Field()), describeRule(fe))
	}
	return errs.NewBadRequestError("validation failed")
}

// checkVar validates a single value against a rule, reporting it under the
// given field name.
func checkVar(value any, rule, field string) error {
	err := validate.Var(value, rule)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errs.NewBadRequestErrorWithField("validation failed", field, describeRule(verrs[0]))
	}
	return errs.NewBadRequestErrorWithField("validation failed", field, "is invalid")
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email address"
	}
	return "is invalid"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
