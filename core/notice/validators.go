package notice

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/user"
)

var (
	targetTag  = "notice_target"
	targetText = "target must be 'all' or a role"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(targetTag, targetValidation)
	core.RegisterCustomTranslation(validate, translator, targetTag, targetText)
}

func targetValidation(fl validator.FieldLevel) bool {
	target := fl.Field().String()
	return target == TargetAll || user.Role(target).Valid()
}
