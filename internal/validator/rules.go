package validator

import (
	"log"
	"regexp"

	"tawzif_backend/internal/cv"
	"tawzif_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func registerCustomRules(v *validator.Validate) {
	// Ошибка регистрации - ошибка программиста, запускаться дальше нельзя
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-post-type", validatePostType)
	mustRegister("is-work-type", validateWorkType)
	mustRegister("is-cv-template", validateCVTemplate)
	mustRegister("is-slug", validateSlug)
}

// Пустые значения пропускаем везде: для них есть 'required'

func validatePostType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.PostType(value).IsValid()
}

func validateWorkType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.WorkType(value).IsValid()
}

func validateCVTemplate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := cv.LookupTemplate(value)
	return ok
}

func validateSlug(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || slugPattern.MatchString(value)
}
