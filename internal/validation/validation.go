package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a form field name to the first message reported for it.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Get(field string) string { return e[field] }

func (e Errors) Any() bool { return len(e) > 0 }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}

// Register adds a custom rule usable from `validate` struct tags.
func Register(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Struct validates s and returns field errors keyed by json name.
func Struct(s any) Errors {
	errs := Errors{}
	err := validate.Struct(s)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("_", err.Error())
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func Label(field string) string { return strings.ReplaceAll(field, "_", " ") }

func Required(field string) string { return fmt.Sprintf("The %s field is required.", Label(field)) }

func Taken(field string) string { return fmt.Sprintf("The %s has already been taken.", Label(field)) }

func Invalid(field string) string { return fmt.Sprintf("The selected %s is invalid.", Label(field)) }

func message(fe validator.FieldError) string {
	label := Label(fe.Field())
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return Required(fe.Field())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "max":
		if isString {
			return fmt.Sprintf("The %s may not be greater than %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", label, fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("The %s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", label, fe.Param())
	case "oneof", "fund":
		return Invalid(fe.Field())
	case "numeric", "number":
		return fmt.Sprintf("The %s must be a number.", label)
	case "datetime":
		return fmt.Sprintf("The %s is not a valid date.", label)
	case "url":
		return fmt.Sprintf("The %s format is invalid.", label)
	}
	return fmt.Sprintf("The %s is invalid.", label)
}
