package constants

const (
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeAPIKeyNotSet        = "API_KEY_NOT_SET"
	ErrCodeQRNotAvailable      = "QR_NOT_AVAILABLE"
	ErrCodeNotConfigured       = "NOT_CONFIGURED"
	ErrCodeNotConnected        = "NOT_CONNECTED"
	ErrCodeNumberNotRegistered = "NUMBER_NOT_REGISTERED"
	ErrCodeProviderError       = "PROVIDER_ERROR"
	ErrCodeMediaFetchFailed    = "MEDIA_FETCH_FAILED"
	ErrCodeUnsupported         = "UNSUPPORTED_OPERATION"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

const MessageErrorFormat = "field %s is invalid"

var errorMessages = map[string]string{
	ErrCodeInvalidRequestBody:  "failed to parse request body",
	ErrCodeValidationFailed:    "request validation failed",
	ErrCodeUnauthorized:        "invalid or missing API key",
	ErrCodeAPIKeyNotSet:        "server API key is not configured",
	ErrCodeQRNotAvailable:      "no QR code available",
	ErrCodeNotConfigured:       "whatsapp transport is not configured",
	ErrCodeNotConnected:        "whatsapp client is not connected",
	ErrCodeNumberNotRegistered: "number is not registered on whatsapp",
	ErrCodeProviderError:       "provider rejected the message",
	ErrCodeMediaFetchFailed:    "could not fetch media from url",
	ErrCodeUnsupported:         "operation not supported by the configured transport",
	ErrCodeInternalError:       "internal server error",
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return errorMessages[ErrCodeInternalError]
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeValidationFailed, ErrCodeProviderError,
		ErrCodeNotConnected, ErrCodeNumberNotRegistered, ErrCodeMediaFetchFailed,
		ErrCodeUnsupported:
		return 400
	case ErrCodeUnauthorized:
		return 401
	case ErrCodeQRNotAvailable:
		return 404
	case ErrCodeNotConfigured, ErrCodeAPIKeyNotSet, ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
