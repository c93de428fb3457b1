package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const phoneRegex = `^\+?[0-9\s\-()]{8,20}$`

const (
	PhoneTag = "phone"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	PhoneTag: ValidatePhone,
}

func ValidatePhone(fl validator.FieldLevel) bool {
	number := fl.Field().String()
	return regexp.MustCompile(phoneRegex).MatchString(number)
}
