package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"foodgram/internal/domain"
)

var (
	// Буквы, цифры, "_" и пробельные символы, включая кириллицу.
	wordCharsRe = regexp.MustCompile(`^[\p{L}\p{N}_\s]+$`)
	slugRe      = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	tagColorRe  = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister("wordchars", func(fl validator.FieldLevel) bool {
		return IsWordChars(fl.Field().String())
	})
	mustRegister("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	mustRegister("tagcolor", func(fl validator.FieldLevel) bool {
		return IsTagColor(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// IsWordChars reports whether s is non-empty and made only of word and
// whitespace characters.
func IsWordChars(s string) bool {
	return wordCharsRe.MatchString(s)
}

// IsTagColor reports whether s is a #RGB or #RRGGBB hex color.
func IsTagColor(s string) bool {
	return tagColorRe.MatchString(s)
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

// Struct validates v and wraps failures into a domain ValidationError.
func Struct(v interface{}) error {
	if fields := Validate(v); fields != nil {
		return domain.ValidationFields("validation failed", fields)
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "wordchars":
		return "must contain only letters, digits, underscores and spaces"
	case "slug":
		return "must contain only latin letters, digits, hyphens and underscores"
	case "tagcolor":
		return "must be a hex color like #1a2b3c"
	default:
		return fe.Tag()
	}
}
