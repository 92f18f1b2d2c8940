package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dukalink/duka_api/internal/utils"
)

// validate is shared by all services; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New()

// validateRequest runs struct validation and converts the first failure into
// a ValidationError naming the offending field. Validation always happens
// before any repository call.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return utils.NewValidationError(
			strings.ToLower(f.Field()),
			fmt.Sprintf("failed %q validation", f.Tag()),
		)
	}
	return err
}
