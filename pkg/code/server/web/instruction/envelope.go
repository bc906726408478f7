package instruction

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/code-payments/solana-instruction-api/pkg/code/instruction"
)

const (
	successJsonKey = "success"
	dataJsonKey    = "data"
	errorJsonKey   = "error"
)

var (
	errNotFound            = errors.New("not found")
	errMethodNotAllowed    = errors.New("method not allowed")
	errRateLimited         = errors.New("rate limit exceeded")
	errInternalServer      = errors.New("internal server error")
	errRequestBodyTooLarge = errors.New("request body too large")
)

// GenericApiResponseBody is the envelope returned by every endpoint:
// {success, data} on success and {success, error} on failure.
type GenericApiResponseBody map[string]any

func NewGenericApiSuccessResponseBody(data any) GenericApiResponseBody {
	return map[string]any{
		successJsonKey: true,
		dataJsonKey:    data,
	}
}

func NewGenericApiFailureResponseBody(err error) GenericApiResponseBody {
	return map[string]any{
		successJsonKey: false,
		errorJsonKey:   err.Error(),
	}
}

func (b *GenericApiResponseBody) ToString() string {
	marshalled, _ := json.Marshal(b)
	return string(marshalled)
}

// HandleErrorInWebContext maps an error to the status code and the error
// exposed to the caller. Failures of the environment are not described.
func HandleErrorInWebContext(err error) (int, error) {
	if err == nil {
		return http.StatusOK, nil
	}

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, errRequestBodyTooLarge
	case instruction.IsValidationError(err), isRequestFormatError(err):
		return http.StatusBadRequest, err
	default:
		return http.StatusInternalServerError, errInternalServer
	}
}
