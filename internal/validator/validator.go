package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pauljones0/thehub-deal-poster/internal/models"
)

// Validator is a wrapper around the validator library.
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator instance.
func New() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateStruct validates a struct based on its tags.
func (v *Validator) ValidateStruct(s any) error {
	err := v.validate.Struct(s)
	if err != nil {
		return fmt.Errorf("validation failed: %s", describe(err))
	}
	return nil
}

// ValidateDeal checks the fields a deal needs before it can be rendered and posted.
func (v *Validator) ValidateDeal(deal models.Deal) error {
	return v.ValidateStruct(deal)
}

// ValidateCredentials checks that both username and password are present.
func (v *Validator) ValidateCredentials(creds models.Credentials) error {
	return v.ValidateStruct(creds)
}

func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
