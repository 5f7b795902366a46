package classroom

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/Narendra3579/ssvteachersapp/core"
)

// NewHomework contains information needed to assign a new homework.
type NewHomework struct {
	Class       string `json:"class" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (nh *NewHomework) Validate() error {
	nh.Class = core.CleanString(nh.Class)
	nh.Description = core.CleanString(nh.Description)
	if err := core.Validate.Struct(nh); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return core.TranslateValidationErrors(vErrs)
		}
		return err
	}
	return nil
}
