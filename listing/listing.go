// Package listing validates business listing submissions. Accepted
// submissions are logged and discarded.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/Elephante152/habitat/models"

	"github.com/go-playground/validator/v10"
)

// ValidationError maps JSON field names to messages
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %d field(s) failed validation", len(e.Fields))
}

// Intake validates and records submissions
type Intake struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewIntake creates an Intake that logs accepted submissions to logger
func NewIntake(logger *slog.Logger) *Intake {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if logger == nil {
		logger = slog.Default()
	}
	return &Intake{validate: v, logger: logger}
}

// Validate checks sub against the listing schema
func (in *Intake) Validate(sub models.BusinessSubmission) error {
	err := in.validate.Struct(sub)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate submission: %w", err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

// Submit validates sub and logs it. Nothing is stored.
func (in *Intake) Submit(ctx context.Context, sub models.BusinessSubmission) error {
	if err := in.Validate(sub); err != nil {
		return err
	}

	in.logger.InfoContext(ctx, "business submission received",
		"businessName", sub.BusinessName,
		"businessType", sub.BusinessType,
		"email", sub.Email,
		"website", sub.Website,
		"city", sub.City,
		"neighborhood", sub.Neighborhood,
		"discountHours", sub.DiscountHours,
		"discountPercentage", *sub.DiscountPercentage,
		"discountMethod", sub.DiscountMethod,
	)
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
