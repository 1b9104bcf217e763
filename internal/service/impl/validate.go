package impl

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput runs struct validation and folds failures into the
// validation error kind.
func checkInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
