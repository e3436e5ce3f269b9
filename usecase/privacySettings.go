package usecase

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/netpulse/netpulse-api/common"
	"github.com/netpulse/netpulse-api/schema"
)

var privacySettingsStoreTimer = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "netpulse",
	Name:      "privacy_settings_store_seconds",
	Help:      "Time spent on privacy settings storage operations",
	Buckets:   prometheus.DefBuckets,
})

type PrivacySettingsUseCase struct {
	logger     *log.Logger
	repository PrivacySettingsRepository
}

func NewPrivacySettingsUseCase(logger *log.Logger, repository PrivacySettingsRepository) *PrivacySettingsUseCase {
	return &PrivacySettingsUseCase{
		logger:     logger,
		repository: repository,
	}
}

// Get returns the settings for userID, lazily creating the document with full
// defaults on first read. Not a pure read: the first call writes.
func (uc *PrivacySettingsUseCase) Get(ctx context.Context, traceID string, userID string) (*schema.PrivacySettings, *common.DetailedError) {
	start := time.Now()
	settings, err := uc.repository.GetOrCreate(ctx, traceID, schema.DefaultPrivacySettings(userID))
	privacySettingsStoreTimer.Observe(time.Since(start).Seconds())
	if err != nil {
		uc.logger.Printf("{%s} privacy settings get failed: %v", traceID, err)
		return nil, storeError(err)
	}
	return settings, nil
}

// Update overwrites exactly the supplied fields for userID, creating the
// document when absent.
//
// Unlike the Get path, an update-triggered create seeds only the supplied
// fields: the other booleans stay absent in store. Kept as observed, flagged
// as a likely product inconsistency rather than silently unified.
func (uc *PrivacySettingsUseCase) Update(ctx context.Context, traceID string, userID string, patch schema.PrivacySettingsPatch) (*schema.PrivacySettings, *common.DetailedError) {
	start := time.Now()
	settings, err := uc.repository.Upsert(ctx, traceID, userID, patch)
	privacySettingsStoreTimer.Observe(time.Since(start).Seconds())
	if err != nil {
		uc.logger.Printf("{%s} privacy settings update failed: %v", traceID, err)
		return nil, storeError(err)
	}
	return settings, nil
}
