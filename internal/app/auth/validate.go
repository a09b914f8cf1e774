package auth

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength applies to registration and password changes alike.
const MinPasswordLength = 8

const minUsernameLength = 3

var (
	nationalIDRe = regexp.MustCompile(`^\d{11}$`)
	phoneRe      = regexp.MustCompile(`^\d{10,15}$`)
	// The deliberately simple shape the product uses: no whitespace or '@'
	// around the '@', at least one dot in the domain.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// validate carries the custom field tags used by the flows.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	mustRegister(v, "cpf", func(fl validator.FieldLevel) bool {
		return nationalIDRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "whatsapp", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "simpleemail", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// RegistrationInput is what the register screen collects. Username is
// optional; every other field is required.
type RegistrationInput struct {
	FullName        string
	Username        string
	NationalID      string
	PhoneNumber     string
	Email           string
	Password        string
	ConfirmPassword string
}

// validateRegistration applies the registration rules in a fixed order;
// the first failing rule wins and stops processing.
func validateRegistration(in RegistrationInput) *Error {
	required := []string{
		in.FullName, in.NationalID, in.PhoneNumber,
		in.Email, in.Password, in.ConfirmPassword,
	}
	for _, field := range required {
		if err := validate.Var(field, "required"); err != nil {
			return newError(KindValidation, msgRequiredFields, nil)
		}
	}

	if in.Username != "" {
		if len(in.Username) < minUsernameLength {
			return newError(KindValidation, msgUsernameTooShort, nil)
		}
		if err := validate.Var(in.Username, "nospace"); err != nil {
			return newError(KindValidation, msgUsernameWhitespace, nil)
		}
	}

	if in.Password != in.ConfirmPassword {
		return newError(KindValidation, msgPasswordMismatch, nil)
	}
	if len(in.Password) < MinPasswordLength {
		return newError(KindValidation, msgPasswordTooShort, nil)
	}

	if err := validate.Var(in.Email, "simpleemail"); err != nil {
		return newError(KindValidation, msgInvalidEmail, nil)
	}
	if err := validate.Var(in.NationalID, "cpf"); err != nil {
		return newError(KindValidation, msgInvalidNationalID, nil)
	}
	if err := validate.Var(in.PhoneNumber, "whatsapp"); err != nil {
		return newError(KindValidation, msgInvalidPhone, nil)
	}

	return nil
}

// validatePasswordChange checks the new-password pair for ChangePassword.
func validatePasswordChange(newPassword, confirmPassword string) *Error {
	if newPassword != confirmPassword {
		return newError(KindValidation, msgPasswordMismatch, nil)
	}
	if len(newPassword) < MinPasswordLength {
		return newError(KindValidation, msgPasswordTooShort, nil)
	}
	return nil
}
