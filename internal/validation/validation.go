// Package validation checks submitted inventory values and reports
// failures as a map keyed by field name.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/erazemk/zaloga/internal/form"
	"github.com/erazemk/zaloga/internal/model"
)

// PriceScale is the number of decimal places a price may carry.
const PriceScale = 2

// CategoryExists reports whether a category ID refers to a live category.
type CategoryExists func(ctx context.Context, id int64) (bool, error)

// Validator validates inventory values.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the inventory rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names for field names in errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("price", validatePrice)
	_ = v.RegisterValidation("packaging", validatePackaging)
	_ = v.RegisterValidation("status", validateStatus)

	return &Validator{validate: v}
}

// IsPrice reports whether s is a non-negative decimal with at most
// PriceScale decimal places. Trailing zeros beyond the scale are accepted.
// Exponent notation is rejected.
func IsPrice(s string) bool {
	if strings.ContainsAny(s, "eE") {
		return false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	if d.IsNegative() {
		return false
	}
	return d.Equal(d.Truncate(PriceScale))
}

func validatePrice(fl validator.FieldLevel) bool {
	return IsPrice(fl.Field().String())
}

func validatePackaging(fl validator.FieldLevel) bool {
	_, err := model.ParsePackagingType(fl.Field().String())
	return err == nil
}

func validateStatus(fl validator.FieldLevel) bool {
	_, err := model.ParseStatus(fl.Field().String())
	return err == nil
}

// Inventory validates values. exists is consulted for a non-nil category.
// The returned error is non-nil only when validation itself could not run.
func (v *Validator) Inventory(ctx context.Context, values form.Values, exists CategoryExists) (form.Errors, error) {
	errs := form.Errors{}

	if err := v.validate.StructCtx(ctx, values); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("validating inventory values: %w", err)
		}
		for _, fe := range fieldErrs {
			if _, seen := errs[fe.Field()]; !seen {
				errs[fe.Field()] = message(fe)
			}
		}
	}

	if values.CategoryID != nil {
		ok, err := exists(ctx, *values.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("checking category: %w", err)
		}
		if !ok {
			errs[form.FieldCategoryID] = "The selected category is invalid."
		}
	}

	return errs, nil
}

// message returns a human-readable message for one failed rule.
func message(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", label, fe.Param())
	case "price":
		return fmt.Sprintf("The %s must be a non-negative amount with at most %d decimal places.", label, PriceScale)
	case "packaging", "status":
		return fmt.Sprintf("The selected %s is invalid.", label)
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}

// CategoryName validates the name of a new or renamed category.
func (v *Validator) CategoryName(name string) string {
	err := v.validate.Var(strings.TrimSpace(name), "required,max=255")
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return ""
	}
	if fieldErrs[0].Tag() == "required" {
		return "The name field is required."
	}
	return "The name may not be greater than 255 characters."
}
