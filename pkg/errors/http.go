package errors

import "net/http"

// HTTPStatus maps an error to the status code the API responds with.
// Errors without a code are treated as internal failures.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeEmptyName:
		// Blank names are ignored rather than rejected.
		return http.StatusOK
	case ErrCodeParse, ErrCodeNoFileSelected,
		ErrCodeInvalidInput, ErrCodeInvalidLayout, ErrCodeInvalidFormat,
		ErrCodeInvalidPath, ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case ErrCodeInvalidTree:
		return http.StatusUnprocessableEntity
	case ErrCodeNodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
