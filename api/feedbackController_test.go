package api

import (
	"net/http"
	"testing"

	"github.com/netpulse/netpulse-api/schema"
)

type feedbackEnvelopeBody struct {
	Message string          `json:"message"`
	Data    schema.Feedback `json:"data"`
}

func TestPostFeedback_Created(t *testing.T) {
	env := newTestEnv()
	body := `{"issueType":"Slow speed","comments":"very slow at home","location":{"latitude":48.85,"longitude":2.35,"address":"Paris"}}`
	response := env.serve(postJSON(env, "/api/feedback", body))

	if response.Code != http.StatusCreated {
		t.Fatalf("Resp given [%d] expected [%d]: %s", response.Code, http.StatusCreated, response.Body.String())
	}
	var envelope feedbackEnvelopeBody
	parseBody(t, response, &envelope)
	if envelope.Message != "Feedback submitted successfully" {
		t.Fatalf("message given [%s] expected [Feedback submitted successfully]", envelope.Message)
	}
	if envelope.Data.ID.IsZero() {
		t.Fatal("stored feedback has no id")
	}
	if envelope.Data.IssueType != "Slow speed" || envelope.Data.Comments != "very slow at home" {
		t.Fatalf("stored feedback fields do not match submission: %+v", envelope.Data)
	}
	if envelope.Data.Location == nil || envelope.Data.Location.Address != "Paris" {
		t.Fatalf("stored feedback location missing: %+v", envelope.Data.Location)
	}
}

// customIssue may be absent when the issue type is not Other
func TestPostFeedback_NoCustomIssueNeeded(t *testing.T) {
	env := newTestEnv()
	response := env.serve(postJSON(env, "/api/feedback", `{"issueType":"No signal","comments":"bad"}`))

	if response.Code != http.StatusCreated {
		t.Fatalf("Resp given [%d] expected [%d]: %s", response.Code, http.StatusCreated, response.Body.String())
	}
}

func TestPostFeedback_OtherWithoutCustomIssue(t *testing.T) {
	env := newTestEnv()
	response := env.serve(postJSON(env, "/api/feedback", `{"issueType":"Other","comments":"bad"}`))

	if response.Code != http.StatusBadRequest {
		t.Fatalf("Resp given [%d] expected [%d] ", response.Code, http.StatusBadRequest)
	}
	detailed := parseError(t, response)
	if detailed.Code != "conditional_field_required" {
		t.Fatalf("error code given [%s] expected [conditional_field_required]", detailed.Code)
	}
	if len(env.feedbackRepository.Records) != 0 {
		t.Fatal("invalid submission must not be persisted")
	}
}

func TestPostFeedback_MissingComments(t *testing.T) {
	env := newTestEnv()
	response := env.serve(postJSON(env, "/api/feedback", `{"issueType":"Other","customIssue":"roaming"}`))

	if response.Code != http.StatusBadRequest {
		t.Fatalf("Resp given [%d] expected [%d] ", response.Code, http.StatusBadRequest)
	}
	detailed := parseError(t, response)
	if detailed.Code != "missing_field" {
		t.Fatalf("error code given [%s] expected [missing_field]", detailed.Code)
	}
}

func TestPostFeedback_StoreError(t *testing.T) {
	env := newTestEnv()
	env.feedbackRepository.Err = errMockStore

	response := env.serve(postJSON(env, "/api/feedback", `{"issueType":"No signal","comments":"bad"}`))
	if response.Code != http.StatusInternalServerError {
		t.Fatalf("Resp given [%d] expected [%d] ", response.Code, http.StatusInternalServerError)
	}
}
