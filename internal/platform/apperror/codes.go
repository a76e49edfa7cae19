package apperror

// ErrorCode is the general category of an error.
type ErrorCode string

const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeBadGateway       ErrorCode = "BAD_GATEWAY"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"
	CodeInternalError    ErrorCode = "INTERNAL_SERVER_ERROR"
)

// BusinessCode is the specific reason behind an error.
type BusinessCode string

const (
	BusinessCodeGeneral         BusinessCode = "GENERAL"
	BusinessCodePostNotFound    BusinessCode = "POST_NOT_FOUND"
	BusinessCodeQueryFailed     BusinessCode = "QUERY_FAILED"
	BusinessCodeCreateFailed    BusinessCode = "CREATE_FAILED"
	BusinessCodeSchemaMismatch  BusinessCode = "SCHEMA_MISMATCH"
	BusinessCodeInvalidPayload  BusinessCode = "INVALID_PAYLOAD"
	BusinessCodeInvalidFormat   BusinessCode = "INVALID_FORMAT"
	BusinessCodeTooManyRequests BusinessCode = "TOO_MANY_REQUESTS"
)
