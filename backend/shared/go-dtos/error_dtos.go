package dtos

// ValidationErrorDetail describes one rejected request field.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewValidationErrorDetail derives the error code from the failed rule.
func NewValidationErrorDetail(field, rule, message string) ValidationErrorDetail {
	return ValidationErrorDetail{Field: field, Message: message, Code: "validation_" + rule}
}
