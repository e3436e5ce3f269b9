package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/netpulse/netpulse-api/common"
	"github.com/netpulse/netpulse-api/schema"
	"github.com/netpulse/netpulse-api/usecase"
)

// feedbackEnvelope wraps the stored feedback with a human-readable message.
// The shape differs from the speed test response on purpose.
type feedbackEnvelope struct {
	Message string           `json:"message"`
	Data    *schema.Feedback `json:"data"`
}

// postFeedback stores one feedback submission.
// 201 with a confirmation envelope, 400 on a validation failure.
func (a *API) postFeedback(ctx context.Context, res *common.HttpResponseWriter) error {
	var incoming usecase.IncomingFeedback
	if err := json.Unmarshal(res.Body, &incoming); err != nil {
		writeErr := errorInvalidPayload.SetInternalMessage(err)
		return res.WriteError(&writeErr)
	}

	stored, submitErr := a.feedback.Submit(ctx, res.TraceID, &incoming)
	if submitErr != nil {
		return res.WriteError(submitErr)
	}

	res.WriteHeader(http.StatusCreated)
	return res.WriteJSON(feedbackEnvelope{
		Message: "Feedback submitted successfully",
		Data:    stored,
	})
}
