package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyBearerToken = "bearer_token"
	ContextKeyRequestID   = "request_id"

	// Database table names
	TableDatasets = "dataset"

	// Preview row limit enforced by the engine regardless of the requested size
	MaxPreviewRows = 30

	// Template for the derived dbGaP request-access link
	RequestAccessURLFormat = "https://www.ncbi.nlm.nih.gov/projects/gap/cgi-bin/study.cgi?study_id=%s"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgNoDatasetAccess     = "User does not have permission to perform this action on the dataset"
	ErrMsgDatasetNotFound     = "Dataset not found"
)
