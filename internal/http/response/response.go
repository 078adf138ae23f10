package response

import (
	"encoding/json"
	"net/http"

	"cvtrack/internal/common"
)

// ErrorCollector counts client-facing errors by code; wired from main.
type ErrorCollector interface {
	ObserveError(code string)
}

var collector ErrorCollector

func SetErrorCollector(c ErrorCollector) {
	collector = c
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Error(w http.ResponseWriter, err error) {
	code := common.CodeOf(err)
	if collector != nil {
		collector.ObserveError(string(code))
	}
	message := "internal error"
	if code != common.CodeInternal {
		message = err.Error()
	}
	JSON(w, httpStatus(code), map[string]errorBody{"error": {
		Code:    code,
		Message: message,
		Fields:  common.FieldsOf(err),
	}})
}

func httpStatus(code common.Code) int {
	switch code {
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeConflict, common.CodeTransitionNotAllowed, common.CodeArchiveOpen, common.CodeArchived:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
