// Package validation проверяет тела запросов и переводит нарушения в бизнес-ошибки.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"gonotes/internal/notes/domain/apperr"
)

// Теги собственных правил.
const (
	tagPersonName  = "personname"
	tagLogin       = "login"
	tagPassword    = "password"
	tagSectionName = "sectionname"
	tagNotBlank    = "notblank"
)

var (
	personNameRe  = regexp.MustCompile(`^[A-Za-zА-я -]+$`)
	loginRe       = regexp.MustCompile(`^[A-Za-zА-я0-9]+$`)
	sectionNameRe = regexp.MustCompile(`^[A-Za-zА-я0-9_ -]+$`)
)

// codeFields задает поле кода ошибки, если оно отличается от имени JSON-поля.
var codeFields = map[string]string{
	"oldPassword": "password",
	"newPassword": "password",
}

// Limits - настраиваемые ограничения длины.
type Limits struct {
	MaxNameLength     int
	MinPasswordLength int
}

// Validator проверяет DTO по тегам validate.
type Validator struct {
	validate *validator.Validate
	limits   Limits
}

// AtLeastOne реализуют DTO, в которых должно быть задано хотя бы одно поле.
type AtLeastOne interface {
	AnySet() bool
}

// New создает валидатор с правилами, зависящими от limits.
func New(limits Limits) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, tagPersonName, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return personNameRe.MatchString(s) && utf8.RuneCountInString(s) <= limits.MaxNameLength
	})
	mustRegister(v, tagLogin, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return loginRe.MatchString(s) && utf8.RuneCountInString(s) <= limits.MaxNameLength
	})
	mustRegister(v, tagPassword, func(fl validator.FieldLevel) bool {
		n := utf8.RuneCountInString(fl.Field().String())
		return n >= limits.MinPasswordLength && n <= limits.MaxNameLength
	})
	mustRegister(v, tagSectionName, func(fl validator.FieldLevel) bool {
		return sectionNameRe.MatchString(fl.Field().String())
	})
	mustRegister(v, tagNotBlank, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v, limits: limits}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// Struct проверяет s и возвращает apperr.List со всеми нарушениями.
func (v *Validator) Struct(s any) error {
	var list apperr.List

	if alo, ok := s.(AtLeastOne); ok && !alo.AnySet() {
		list = append(list, apperr.ErrAllParametersNull)
	}

	if err := v.validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating request: %w", err)
		}
		for _, fe := range fieldErrs {
			list = append(list, v.translate(fe))
		}
	}

	if len(list) == 0 {
		return nil
	}
	return list
}

func (v *Validator) translate(fe validator.FieldError) *apperr.Error {
	field := fe.Field()
	codeField := field
	if mapped, ok := codeFields[field]; ok {
		codeField = mapped
	}

	e := apperr.InvalidField(codeField, v.message(fe))
	e.Field = field
	return e
}

func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field %s is required", fe.Field())
	case tagNotBlank:
		return fmt.Sprintf("Field %s must not be blank", fe.Field())
	case tagPersonName:
		return fmt.Sprintf("Only letters, spaces and hyphens are allowed, at most %d characters", v.limits.MaxNameLength)
	case tagLogin:
		return fmt.Sprintf("Only letters and digits are allowed, at most %d characters", v.limits.MaxNameLength)
	case tagPassword:
		return fmt.Sprintf("Password length must be between %d and %d", v.limits.MinPasswordLength, v.limits.MaxNameLength)
	case tagSectionName:
		return "Only letters, digits, spaces, underscores and hyphens are allowed"
	case "min":
		return fmt.Sprintf("Field %s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("Field %s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Field %s is invalid", fe.Field())
	}
}
