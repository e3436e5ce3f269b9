package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/netpulse/netpulse-api/common"
	"github.com/netpulse/netpulse-api/schema"
)

var feedbackStoreTimer = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "netpulse",
	Name:      "feedback_store_seconds",
	Help:      "Time spent on feedback storage operations",
	Buckets:   prometheus.DefBuckets,
})

type (
	// IncomingFeedback is the body of a feedback submission
	IncomingFeedback struct {
		IssueType   string                   `json:"issueType"`
		CustomIssue string                   `json:"customIssue"`
		Comments    string                   `json:"comments"`
		Location    *schema.FeedbackLocation `json:"location"`
		Screenshot  string                   `json:"screenshot"`
	}

	FeedbackUseCase struct {
		logger     *log.Logger
		repository FeedbackRepository
	}
)

func NewFeedbackUseCase(logger *log.Logger, repository FeedbackRepository) *FeedbackUseCase {
	return &FeedbackUseCase{
		logger:     logger,
		repository: repository,
	}
}

// Validate checks the required and conditional field rules.
//
// customIssue is only required when issueType is "Other", and must then be
// non-blank after trimming.
func (in *IncomingFeedback) Validate() (*schema.Feedback, *common.DetailedError) {
	if in.Comments == "" || in.IssueType == "" {
		return nil, missingFieldError("issueType and comments are required")
	}
	if in.IssueType == schema.IssueTypeOther && strings.TrimSpace(in.CustomIssue) == "" {
		return nil, conditionalFieldError("customIssue is required when issueType is Other")
	}

	return &schema.Feedback{
		IssueType:   in.IssueType,
		CustomIssue: in.CustomIssue,
		Comments:    in.Comments,
		Location:    in.Location,
		Screenshot:  in.Screenshot,
	}, nil
}

// Submit validates and persists one feedback, returning the stored record
func (uc *FeedbackUseCase) Submit(ctx context.Context, traceID string, in *IncomingFeedback) (*schema.Feedback, *common.DetailedError) {
	record, validationErr := in.Validate()
	if validationErr != nil {
		return nil, validationErr
	}

	start := time.Now()
	stored, err := uc.repository.Insert(ctx, traceID, record)
	feedbackStoreTimer.Observe(time.Since(start).Seconds())
	if err != nil {
		uc.logger.Printf("{%s} feedback insert failed: %v", traceID, err)
		return nil, storeError(err)
	}
	return stored, nil
}
