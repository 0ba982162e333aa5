package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopfront/backend/internal/apperrors"
)

// passwordRegex validates password: at least 8 chars, uppercase, lowercase, number, special: !_?^&+-=|
var passwordRegex = []*regexp.Regexp{
	regexp.MustCompile(`.{8,}`),
	regexp.MustCompile(`[a-z]`),
	regexp.MustCompile(`[A-Z]`),
	regexp.MustCompile(`[0-9]`),
	regexp.MustCompile(`[!_?^&+\-=|]`),
}

// validate is shared by all handlers; validator caches struct metadata
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		for _, re := range passwordRegex {
			if !re.MatchString(password) {
				return false
			}
		}
		return true
	})

	return v
}

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
// Every failure is returned as *apperrors.ValidationError.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := decodeBody(r, dst, false); err != nil {
		return err
	}

	return validateStruct(dst)
}

// decodePartialAndValidate is decodeAndValidate for partial updates:
// an empty body is read as an empty object.
func decodePartialAndValidate(r *http.Request, dst any) error {
	if err := decodeBody(r, dst, true); err != nil {
		return err
	}

	return validateStruct(dst)
}

func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apperrors.FieldError(typeErr.Field, fmt.Sprintf("Expected a value of type %s.", typeErr.Type.String()))
	case errors.Is(err, io.EOF):
		return apperrors.Validation("Request body is empty")
	default:
		return apperrors.Validation("Invalid request body")
	}
}

// validateStruct converts validator failures into field messages
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	ve := apperrors.Validation("Validation failed")
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), fieldMessage(fe))
	}
	return ve
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "password":
		return "Password must be at least 8 characters long and contain a lowercase letter, an uppercase letter, a digit and one of !_?^&+-=|"
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}
