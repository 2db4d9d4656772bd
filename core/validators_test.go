package core

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	InitValidators(validate, translator)
	return validate, translator
}

func TestInitValidators(t *testing.T) {
	validate, translator := newTestValidator()

	type form struct {
		Name    string `json:"name" validate:"required,notblank"`
		Mobile  string `json:"mobile" validate:"required,mobile"`
		Periods int    `json:"periods" validate:"periods"`
		Code    string `json:"code" validate:"required,schoolcode"`
	}

	tests := []struct {
		name      string
		form      form
		wantField map[string]string
	}{
		{
			name: "valid",
			form: form{Name: "Asha", Mobile: "9876543210", Periods: 8, Code: "DPS01"},
		},
		{
			name:      "blank name",
			form:      form{Name: "   ", Mobile: "9876543210", Periods: 8, Code: "DPS01"},
			wantField: map[string]string{"name": "this field cannot be blank"},
		},
		{
			name: "bad mobile and periods",
			form: form{Name: "Asha", Mobile: "12345", Periods: 16, Code: "DPS01"},
			wantField: map[string]string{
				"mobile":  "enter a valid 10 digit mobile number",
				"periods": "must be between 1 and 15",
			},
		},
		{
			name:      "bad code",
			form:      form{Name: "Asha", Mobile: "9876543210", Periods: 1, Code: "D-1"},
			wantField: map[string]string{"code": "school code must be 3 to 12 letters or digits"},
		},
		{
			name:      "missing",
			form:      form{Periods: 8},
			wantField: map[string]string{"name": "this field is required", "mobile": "this field is required", "code": "this field is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.form)
			if tt.wantField == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)
			got := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				got[fe.Field()] = fe.Translate(translator)
			}
			assert.Equal(t, tt.wantField, got)
		})
	}
}
