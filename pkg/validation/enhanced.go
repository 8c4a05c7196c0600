// Package validation provides enhanced validation with go-playground/validator integration
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	coregraph "github.com/Tbit256/Process-Flowchart/internal/core/graph"
)

// Enhanced validator instance with custom validations
var (
	// Validate is the main validator instance
	Validate *validator.Validate

	handleIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func init() {
	Validate = validator.New()

	// Register custom validation functions
	Validate.RegisterValidation("node_kind", validateNodeKind)
	Validate.RegisterValidation("edge_style", validateEdgeStyle)
	Validate.RegisterValidation("arrow_end", validateArrowEnd)
	Validate.RegisterValidation("handle_id", validateHandleID)

	// Register tag name function to use JSON tags for field names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// MaxLabelLength matches the max tag on node and edge labels.
const MaxLabelLength = 512

// ValidateWithPlayground validates using go-playground/validator, then runs
// the value's own Validate method when it implements Validator.
func ValidateWithPlayground(s interface{}) error {
	err := Validate.Struct(s)
	if err != nil {
		return formatValidationErrors(err)
	}
	if v, ok := s.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// ValidateLabel checks a node or edge label against the label length limit.
func ValidateLabel(label string) error {
	if err := Validate.Var(label, fmt.Sprintf("max=%d", MaxLabelLength)); err != nil {
		return fmt.Errorf("%w: %s", coregraph.ErrLabelTooLong, formatValidationErrors(err).Error())
	}
	return nil
}

// ValidateColor checks that color is a hex color such as #64748b.
func ValidateColor(color string) error {
	if err := Validate.Var(color, "required,hexcolor"); err != nil {
		return fmt.Errorf("%w: %s", coregraph.ErrInvalidEdgeColor, formatValidationErrors(err).Error())
	}
	return nil
}

// formatValidationErrors converts validator errors to our custom format
func formatValidationErrors(err error) ValidationErrors {
	var errs ValidationErrors

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			errs = append(errs, ValidationError{
				Field:   fieldError.Field(),
				Value:   fieldError.Value(),
				Message: getErrorMessage(fieldError),
			})
		}
		return errs
	}

	return ValidationErrors{{Field: "", Value: nil, Message: err.Error()}}
}

// getErrorMessage returns a human-readable error message
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("minimum value/length is %s", fe.Param())
	case "max":
		return fmt.Sprintf("maximum value/length is %s", fe.Param())
	case "hexcolor":
		return "must be a hex color such as #64748b"
	case "node_kind":
		return "must be one of start, process, decision, end"
	case "edge_style":
		return "must be one of bezier, straight, step, smoothstep, default"
	case "arrow_end":
		return "must be source or target"
	case "handle_id":
		return "must be a valid handle identifier (alphanumeric, underscore, hyphen)"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	default:
		return fmt.Sprintf("validation failed: %s", fe.Tag())
	}
}

// Custom validation functions for flowchart-specific rules

func validateNodeKind(fl validator.FieldLevel) bool {
	_, ok := coregraph.ParseNodeKind(fl.Field().String())
	return ok
}

func validateEdgeStyle(fl validator.FieldLevel) bool {
	return coregraph.EdgeStyle(fl.Field().String()).Valid()
}

func validateArrowEnd(fl validator.FieldLevel) bool {
	return coregraph.ArrowEnd(fl.Field().String()).Valid()
}

// validateHandleID accepts the identifiers renderers give to extra anchors.
func validateHandleID(fl validator.FieldLevel) bool {
	return handleIDPattern.MatchString(fl.Field().String())
}
