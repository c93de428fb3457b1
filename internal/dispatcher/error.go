package dispatcher

import "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/constants"

// Error is a coded dispatch failure. The fiber error handler maps the code to
// an HTTP status and the message into the {success:false,error} shape.
type Error struct {
	Code  string
	Cause error
}

func NewError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return constants.GetErrorMessage(e.Code)
}

func (e Error) Unwrap() error {
	return e.Cause
}

// Message is the human-readable text surfaced to API callers. Provider errors
// carry the provider's own message; everything else uses the catalog text.
func (e Error) Message() string {
	if e.Code == constants.ErrCodeProviderError && e.Cause != nil {
		return e.Cause.Error()
	}
	return constants.GetErrorMessage(e.Code)
}
