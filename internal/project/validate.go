package project

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/piwi3910/floorplan/internal/model"
)

// validate is a singleton validator instance
var validate = validator.New()

// ValidatePlanDocument checks the structural validity of a plan as read
// from disk or received over the API: required fields, positive
// dimensions, non-negative budgets. Cross-field rules (duplicate room
// names, unknown adjacency endpoints) are enforced by the engine.
func ValidatePlanDocument(plan *model.Plan) error {
	if plan == nil {
		return errors.New("plan cannot be nil")
	}
	if err := validate.Struct(plan); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must have at least %s entries", field, e.Param())
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, e.Param())
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
