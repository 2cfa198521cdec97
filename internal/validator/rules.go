package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/utils"
)

// registerCustomRules wires the domain validation tags. Registration
// failure is a startup error, not a request error.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-role': the value names a known role
	mustRegister("is-role", validateRole)

	// 'is-login': the value looks like an email or a phone number
	mustRegister("is-login", validateLogin)
}

func validateRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is 'required''s job
	}
	return models.ValidRole(models.RoleName(value))
}

func validateLogin(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return utils.IsEmail(value) || utils.IsPhoneNumber(value)
}
