package util

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// FieldError 参数校验失败，指明出错字段
type FieldError struct {
	Field string
	Rule  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("字段 [%s] 校验失败，规则 [%s]", e.Field, e.Rule)
}

func NewFieldError(field, rule string) error {
	return &FieldError{Field: field, Rule: rule}
}

// ValidateDTO 校验请求体，返回第一个出错字段
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return NewFieldError(jsonFieldName(firstError), firstError.Tag())
		}
		return err
	}
	return nil
}

// ValidateEnum 校验枚举值
func ValidateEnum(field, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return NewFieldError(field, "oneof")
	}
	return nil
}

func jsonFieldName(fe validator.FieldError) string {
	return ToSnakeCase(fe.Field())
}
