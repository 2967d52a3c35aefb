package item

import (
	"errors"
	"reflect"
	"strings"

	"itemshare/domain"
	"itemshare/internal/imaging"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validator checks drafts and borrow requests against the configured
// category set and image size bound.
type Validator struct {
	validate      *validator.Validate
	categories    []string
	categorySet   map[string]struct{}
	maxImageBytes int
}

func NewValidator(categories []string, maxImageBytes int) *Validator {
	if maxImageBytes <= 0 {
		maxImageBytes = imaging.DefaultMaxBytes
	}

	v := &Validator{
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		categories:    append([]string(nil), categories...),
		categorySet:   make(map[string]struct{}, len(categories)),
		maxImageBytes: maxImageBytes,
	}
	for _, category := range categories {
		v.categorySet[category] = struct{}{}
	}

	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	_ = v.validate.RegisterValidation("notblank", validators.NotBlank)
	_ = v.validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := v.categorySet[fl.Field().String()]
		return ok
	})
	_ = v.validate.RegisterValidation("imagesize", func(fl validator.FieldLevel) bool {
		return imaging.PayloadSize(fl.Field().String()) <= v.maxImageBytes
	})

	return v
}

// Categories returns the configured category set in configuration order.
func (v *Validator) Categories() []string {
	return append([]string(nil), v.categories...)
}

func (v *Validator) MaxImageBytes() int {
	return v.maxImageBytes
}

// Struct validates s and returns a *domain.ValidationError naming every
// failing field in declaration order, or nil.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make([]domain.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: ruleMessage(fe.Tag()),
		})
	}

	return &domain.ValidationError{Fields: fields}
}

func ruleMessage(rule string) string {
	switch rule {
	case "required", "notblank":
		return "is required"
	case "category":
		return "must be one of the configured categories"
	case "imagesize":
		return "exceeds the maximum image size"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
