package usecase

import (
	"net/http"

	"github.com/netpulse/netpulse-api/common"
)

var (
	errorRunningQuery = common.DetailedError{Status: http.StatusInternalServerError, Code: "data_store_error", Message: "internal server error"}
)

// missingFieldError describes the first unmet required-field rule
func missingFieldError(message string) *common.DetailedError {
	return &common.DetailedError{
		Status:  http.StatusBadRequest,
		Code:    "missing_field",
		Message: message,
	}
}

// conditionalFieldError describes an unmet conditional requirement
func conditionalFieldError(message string) *common.DetailedError {
	return &common.DetailedError{
		Status:  http.StatusBadRequest,
		Code:    "conditional_field_required",
		Message: message,
	}
}

func storeError(err error) *common.DetailedError {
	logError := errorRunningQuery.SetInternalMessage(err)
	return &logError
}
