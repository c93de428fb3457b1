package validator

import (
	"fmt"
	"strings"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/metrics"
	"github.com/go-playground/validator/v10"
)

const sep = " and "

type Error struct {
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validate(data interface{}) []Error
	Message(errs []Error, format string) string
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validate *validator.Validate, m *metrics.Metrics) IXValidator {
	for key, function := range valid {
		validate.RegisterValidation(key, function)
	}

	return &XValidator{
		validator: validate,
		metrics:   m,
	}
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, Error{
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Value(),
			})

			if x.metrics != nil {
				x.metrics.RecordValidationError(err.Field(), err.Tag())
			}
		}
	}
	return validationErrors
}

func (x XValidator) Message(errs []Error, format string) string {
	errMsgs := make([]string, 0, len(errs))
	for _, err := range errs {
		errMsgs = append(errMsgs, fmt.Sprintf(format, err.FailedField))
	}
	return strings.Join(errMsgs, sep)
}
