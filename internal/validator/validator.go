// Package validator wraps go-playground/validator with the rental rules
// and maps failures onto apperr validation errors.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
)

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the return_condition rule registered.
// Field names in errors are the json names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("return_condition", func(fl validator.FieldLevel) bool {
		switch domain.ReturnCondition(fl.Field().String()) {
		case domain.ReturnConditionUnreturned, domain.ReturnConditionReturnedNormal, domain.ReturnConditionReturnedDamage:
			return true
		}
		return false
	})
	return &Validator{v: v}
}

// Struct validates s. The first failing field is returned as an apperr validation
// error; a missing customer name is reported as a missing required field.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Wrap(apperr.KindValidation, "invalid input", err)
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return apperr.MissingRequiredField(fe.Field())
	}
	return apperr.Validation(fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "return_condition":
		return fmt.Sprintf("%s is not a known return condition", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
