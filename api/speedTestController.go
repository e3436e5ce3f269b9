package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/netpulse/netpulse-api/common"
	"github.com/netpulse/netpulse-api/usecase"
)

// postSpeedTest stores one measurement.
// 201 with the stored record, 400 on a validation failure.
func (a *API) postSpeedTest(ctx context.Context, res *common.HttpResponseWriter) error {
	var incoming usecase.IncomingSpeedTest
	if err := json.Unmarshal(res.Body, &incoming); err != nil {
		writeErr := errorInvalidPayload.SetInternalMessage(err)
		return res.WriteError(&writeErr)
	}

	stored, submitErr := a.speedTest.Submit(ctx, res.TraceID, &incoming)
	if submitErr != nil {
		return res.WriteError(submitErr)
	}

	res.WriteHeader(http.StatusCreated)
	return res.WriteJSON(stored)
}

// getSpeedTests returns measurements ordered by testedAt descending,
// optionally filtered by the userId query parameter.
//
// An empty filter returns the entire collection. Known unbounded-result
// behavior, preserved until a pagination contract is added.
func (a *API) getSpeedTests(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.URL.Query().Get("userId")

	records, queryErr := a.speedTest.Query(ctx, res.TraceID, userID)
	if queryErr != nil {
		return res.WriteError(queryErr)
	}
	return res.WriteJSON(records)
}
