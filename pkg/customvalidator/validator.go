// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("slug", isSlug); err != nil {
		return err
	}
	if err := v.RegisterValidation("pub_year", isValidPublicationYear); err != nil {
		return err
	}
	if err := v.RegisterValidation("role_name", isKnownRole); err != nil {
		return err
	}
	return nil
}

var slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func isSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

// isValidPublicationYear: год публикации не дальше двух лет в будущем.
func isValidPublicationYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	maxAllowed := int64(time.Now().Year() + 2)
	return year >= 1 && year <= maxAllowed
}

func isKnownRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "user", "moderator", "admin":
		return true
	}
	return false
}
