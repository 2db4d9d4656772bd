package core

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	MinPeriods = 1
	MaxPeriods = 15
)

var (
	// custom validation tags & texts
	alphaNumUnderTag   = "alphanum_"
	alphaNumUnderText  = "only alphanumeric characters and underscores are allowed"
	alphaNumUnderRegex = regexp.MustCompile(`^[\w\s]+$`)

	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	mobileTag   = "mobile"
	mobileText  = "enter a valid 10 digit mobile number"
	mobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

	periodsTag  = "periods"
	periodsText = fmt.Sprintf("must be between %d and %d", MinPeriods, MaxPeriods)

	schoolCodeTag   = "schoolcode"
	schoolCodeText  = "school code must be 3 to 12 letters or digits"
	schoolCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{3,12}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Dates are validated as their YYYY-MM-DD form, the zero Date as "".
	validate.RegisterCustomTypeFunc(dateValue, Date{})

	// register custom validators
	_ = validate.RegisterValidation(alphaNumUnderTag, alphaNumUnderValidation)
	RegisterCustomTranslation(validate, translator, alphaNumUnderTag, alphaNumUnderText)

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	_ = validate.RegisterValidation(mobileTag, mobileValidation)
	RegisterCustomTranslation(validate, translator, mobileTag, mobileText)

	_ = validate.RegisterValidation(periodsTag, periodsValidation)
	RegisterCustomTranslation(validate, translator, periodsTag, periodsText)

	_ = validate.RegisterValidation(schoolCodeTag, schoolCodeValidation)
	RegisterCustomTranslation(validate, translator, schoolCodeTag, schoolCodeText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func dateValue(v reflect.Value) interface{} {
	if d, ok := v.Interface().(Date); ok && !d.IsZero() {
		return d.String()
	}
	return ""
}

// Custom Global Validators

// alphaNumUnderValidation only allows alphanumeric characters and underscores.
func alphaNumUnderValidation(fl validator.FieldLevel) bool {
	return alphaNumUnderRegex.MatchString(fl.Field().String())
}

// notBlankValidation rejects strings made only of whitespace.
func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// mobileValidation accepts 10 digit Indian mobile numbers.
func mobileValidation(fl validator.FieldLevel) bool {
	return mobileRegex.MatchString(fl.Field().String())
}

func periodsValidation(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= MinPeriods && n <= MaxPeriods
}

func schoolCodeValidation(fl validator.FieldLevel) bool {
	return schoolCodeRegex.MatchString(fl.Field().String())
}
