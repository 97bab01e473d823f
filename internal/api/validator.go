// File: internal/api/validator.go
package api

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var nameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// RegisterValidations 註冊本服務的自訂驗證規則
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) < 6 {
			return false
		}
		var upper, lower, digit bool
		for _, r := range s {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return upper && lower && digit
	})
}

// ValidationDetails 將 validator 錯誤攤平為欄位層級的細節，
// 非驗證錯誤時回傳 nil。
func ValidationDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, FieldError{
			Field:   e.Field(),
			Message: fieldMessage(e),
		})
	}
	return details
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return "Please provide a valid email address"
	case "min", "max":
		return fmt.Sprintf("%s must be between 2 and 50 characters", e.Field())
	case "personname":
		return "Name can only contain letters and spaces"
	case "strongpassword":
		return "Password must be at least 6 characters and contain at least one uppercase letter, one lowercase letter and one number"
	case "eqfield":
		return "Password confirmation does not match new password"
	case "oneof":
		return fmt.Sprintf("%s has an invalid value", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
