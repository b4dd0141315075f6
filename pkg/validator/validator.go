package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// licensePattern matches an SIP-style medical license number: an uppercase
// alphanumeric identifier of 6 to 20 characters, with optional slash or
// dash separators between segments.
var licensePattern = regexp.MustCompile(`^[A-Z0-9]+(?:[/-][A-Z0-9]+)*$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("medical_license", validateMedicalLicense)
	return &CustomValidator{
		validator: v,
	}
}

func validateMedicalLicense(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) < 6 || len(value) > 20 {
		return false
	}
	return licensePattern.MatchString(value)
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "medical_license":
				errors[field] = field + " must be a valid medical license number"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
