package dto

import "net/http"

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Selection and validation problems are the caller's fault (400/422);
// production failures that roll the transaction back surface as 500.
var ErrorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_RANGE":    http.StatusBadRequest,
	"INVALID_MODE":     http.StatusBadRequest,
	"INVALID_INTERVAL": http.StatusBadRequest,
	"INVALID_RATE":     http.StatusBadRequest,
	"INVALID_RESOURCE": http.StatusBadRequest,
	"INVALID_CUSTOMER": http.StatusBadRequest,
	"INVALID_CODE":     http.StatusBadRequest,
	"INVALID_NAME":     http.StatusBadRequest,
	"INVALID_ADDRESS":  http.StatusBadRequest,
	"INVALID_TERMS":    http.StatusBadRequest,
	"INVALID_UNIT":     http.StatusBadRequest,
	"INVALID_TYPE":     http.StatusBadRequest,
	"EMPTY_SELECTION":  http.StatusBadRequest,

	"INVALID_STATE":    http.StatusUnprocessableEntity,
	"ALREADY_INVOICED": http.StatusUnprocessableEntity,
	"ALREADY_CREDITED": http.StatusUnprocessableEntity,
	"NOT_CREDITABLE":   http.StatusUnprocessableEntity,
	"MIXED_SOURCE":     http.StatusUnprocessableEntity,
	"MIXED_CUSTOMER":   http.StatusUnprocessableEntity,
	"STALE_SELECTION":  http.StatusConflict,

	"ALLOCATION_FAILED":  http.StatusInternalServerError,
	"PERSISTENCE_FAILED": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
