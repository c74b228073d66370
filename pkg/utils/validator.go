package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names so errors line up with request payloads
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("maxbytes", maxBytes)
	_ = v.RegisterValidation("decimals", maxDecimals)

	return v
}

// maxBytes limits a string by its encoded length, not its rune count.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// maxDecimals rejects floats whose shortest decimal form has more fractional
// digits than param.
func maxDecimals(fl validator.FieldLevel) bool {
	places, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	formatted := strconv.FormatFloat(fl.Field().Float(), 'f', -1, 64)
	dot := strings.IndexByte(formatted, '.')
	return dot < 0 || len(formatted)-dot-1 <= places
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the ordered list of failures for one payload.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	return strings.Join(ve.FullMessages(), "; ")
}

// FullMessages returns the human readable message of every failure.
func (ve ValidationErrors) FullMessages() []string {
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = fe.Message
	}
	return msgs
}

// Has reports whether field has at least one failure.
func (ve ValidationErrors) Has(field string) bool {
	for _, fe := range ve {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// ValidateStruct runs the validate tags of data and returns nil when it is valid.
func ValidateStruct(data interface{}) ValidationErrors {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ValidationErrors{{Message: err.Error()}}
	}

	errs := make(ValidationErrors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		errs = append(errs, FieldError{
			Field:   fe.Field(),
			Message: getErrorMessage(fe),
		})
	}

	return errs
}

// HumanizeField turns a json field name into a sentence label: "first_name" -> "First name".
func HumanizeField(field string) string {
	field = strings.TrimSuffix(field, "_id")
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + strings.ToLower(field[1:])
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	label := HumanizeField(err.Field())

	switch err.Tag() {
	case "required":
		return label + " can't be blank"
	case "email":
		return label + " is invalid"
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s is too short (minimum is %s characters)", label, err.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", label, err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s is too long (maximum is %s characters)", label, err.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", label, err.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", label, err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", label, err.Param())
	case "maxbytes":
		return fmt.Sprintf("%s is too long (maximum is %s bytes)", label, err.Param())
	case "decimals":
		return fmt.Sprintf("%s must have at most %s decimal places", label, err.Param())
	case "eqfield":
		return fmt.Sprintf("%s doesn't match %s", label, HumanizeField(err.Param()))
	case "uuid", "uuid4":
		return label + " must be a valid UUID"
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("%s must be one of: %s", label, options)
	default:
		return label + " is invalid"
	}
}
