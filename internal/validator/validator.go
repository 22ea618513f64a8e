// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"debentra/internal/dateutil"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("flexdate", validateFlexDate)
		_ = v.RegisterValidation("compliance_phase", validateCompliancePhase)
		_ = v.RegisterValidation("admin_role", validateAdminRole)
	}
}

// validateFlexDate accepts the dual date forms used across series records:
// DD/MM/YYYY or ISO 8601. Empty strings pass; pair with required when the
// field is mandatory.
func validateFlexDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := dateutil.Parse(s)
	return err == nil
}

func validateCompliancePhase(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pre", "post", "recurring":
		return true
	}
	return false
}

func validateAdminRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "operations", "viewer":
		return true
	}
	return false
}
