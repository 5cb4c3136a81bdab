package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate          *validator.Validate
	phoneNumberRegexp = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("patient_status", validatePatientStatus)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePatientStatus(fl validator.FieldLevel) bool {
	return IsValidPatientStatus(fl.Field().String())
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phoneNumberRegexp.MatchString(fl.Field().String())
}
