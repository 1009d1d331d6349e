package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
)

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// Error maps a coded error to its HTTP status. Uncoded errors are 500s.
func Error(w http.ResponseWriter, err error) {
	var coded *common.Error
	if !errors.As(err, &coded) {
		JSON(w, http.StatusInternalServerError, errorBody{Error: string(common.CodeInternal), Message: "internal error"})
		return
	}
	JSON(w, statusFor(coded.Code), errorBody{Error: string(coded.Code), Message: coded.Message, Fields: coded.Fields})
}

func statusFor(code common.ErrorCode) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeGatewayUnavailable:
		return http.StatusBadGateway
	case common.CodeGatewayRejected:
		return http.StatusUnprocessableEntity
	case common.CodeStorage, common.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
