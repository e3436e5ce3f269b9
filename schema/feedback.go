package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueTypeOther is the issue type requiring a custom description
const IssueTypeOther = "Other"

type (
	// FeedbackLocation is an optional free-form place attached to a feedback
	FeedbackLocation struct {
		Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
		Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
		Address   string   `bson:"address,omitempty" json:"address,omitempty"`
	}

	// Feedback is one user feedback submission, immutable after creation
	Feedback struct {
		ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
		IssueType   string             `bson:"issueType" json:"issueType"`
		CustomIssue string             `bson:"customIssue,omitempty" json:"customIssue,omitempty"`
		Comments    string             `bson:"comments" json:"comments"`
		Location    *FeedbackLocation  `bson:"location,omitempty" json:"location,omitempty"`
		// Screenshot is an opaque encoded image, bounded by the transport
		// body limit, never inspected here
		Screenshot string    `bson:"screenshot,omitempty" json:"screenshot,omitempty"`
		CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
		UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
	}
)
