package handler

import (
	"github.com/relaycrm/crm-system/internal/core/domain"
)

// echoValidator lets Echo call c.Validate(req) with the shared domain
// validator, so request and record failures share one error shape.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

func (echoValidator) Validate(i any) error {
	return domain.ValidateStruct(i)
}
