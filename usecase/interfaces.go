package usecase

import (
	"context"

	"github.com/netpulse/netpulse-api/schema"
)

type SpeedTestRepository interface {
	Insert(ctx context.Context, traceID string, record *schema.SpeedTest) (*schema.SpeedTest, error)
	// FindAll returns every record, most recent testedAt first. An empty
	// userID means no filter.
	FindAll(ctx context.Context, traceID string, userID string) ([]schema.SpeedTest, error)
}

type FeedbackRepository interface {
	Insert(ctx context.Context, traceID string, record *schema.Feedback) (*schema.Feedback, error)
}

type PrivacySettingsRepository interface {
	// GetOrCreate returns the settings for defaults.UserID, atomically
	// inserting defaults when no document exists yet.
	GetOrCreate(ctx context.Context, traceID string, defaults schema.PrivacySettings) (*schema.PrivacySettings, error)
	// Upsert overwrites exactly the supplied fields of the userID document,
	// atomically creating it seeded with only those fields when absent.
	Upsert(ctx context.Context, traceID string, userID string, patch schema.PrivacySettingsPatch) (*schema.PrivacySettings, error)
}

type DatabaseAdapter interface {
	Ping() error
	Close() error
	Start()
	WaitUntilStarted()
}
