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

var speedTestStoreTimer = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "netpulse",
	Name:      "speedtest_store_seconds",
	Help:      "Time spent on speed test storage operations",
	Buckets:   prometheus.DefBuckets,
})

type (
	// IncomingSpeedTest is the body of a speed test submission.
	//
	// The numeric fields are pointers so a reported value of 0 is
	// distinguishable from an absent field.
	IncomingSpeedTest struct {
		UserID        string           `json:"userId"`
		DownloadSpeed *float64         `json:"downloadSpeed"`
		UploadSpeed   *float64         `json:"uploadSpeed"`
		Ping          *float64         `json:"ping"`
		Jitter        *float64         `json:"jitter"`
		Carrier       string           `json:"carrier"`
		NetworkType   string           `json:"networkType"`
		TestedAt      *time.Time       `json:"testedAt"`
		Location      *schema.GeoPoint `json:"location"`
	}

	SpeedTestUseCase struct {
		logger     *log.Logger
		repository SpeedTestRepository
	}
)

func NewSpeedTestUseCase(logger *log.Logger, repository SpeedTestRepository) *SpeedTestUseCase {
	return &SpeedTestUseCase{
		logger:     logger,
		repository: repository,
	}
}

// Validate checks the required-field rules and returns the normalized record
// to persist. Values are stored exactly as supplied, nothing is recomputed.
func (in *IncomingSpeedTest) Validate() (*schema.SpeedTest, *common.DetailedError) {
	if in.UserID == "" || in.Carrier == "" || in.NetworkType == "" ||
		in.DownloadSpeed == nil || in.UploadSpeed == nil || in.Ping == nil || in.Jitter == nil ||
		in.TestedAt == nil {
		return nil, missingFieldError("Missing required fields")
	}

	location := schema.DefaultLocation()
	if in.Location != nil {
		location = *in.Location
		if location.Type == "" {
			location.Type = schema.GeoJSONPointType
		}
		if location.Type != schema.GeoJSONPointType {
			return nil, missingFieldError("location must be a GeoJSON Point")
		}
		if len(location.Coordinates) != 2 {
			return nil, missingFieldError("location coordinates must be [longitude, latitude]")
		}
	}

	return &schema.SpeedTest{
		UserID:        in.UserID,
		DownloadSpeed: *in.DownloadSpeed,
		UploadSpeed:   *in.UploadSpeed,
		Ping:          *in.Ping,
		Jitter:        *in.Jitter,
		Carrier:       in.Carrier,
		NetworkType:   in.NetworkType,
		TestedAt:      *in.TestedAt,
		Location:      location,
	}, nil
}

// Submit validates and persists one measurement, returning the stored record
// with its assigned id and timestamps. Multiple records per user are normal,
// there is no uniqueness constraint.
func (uc *SpeedTestUseCase) Submit(ctx context.Context, traceID string, in *IncomingSpeedTest) (*schema.SpeedTest, *common.DetailedError) {
	record, validationErr := in.Validate()
	if validationErr != nil {
		return nil, validationErr
	}

	start := time.Now()
	stored, err := uc.repository.Insert(ctx, traceID, record)
	speedTestStoreTimer.Observe(time.Since(start).Seconds())
	if err != nil {
		uc.logger.Printf("{%s} speedtest insert failed: %v", traceID, err)
		return nil, storeError(err)
	}
	return stored, nil
}

// Query returns measurements ordered by testedAt descending. An empty userID
// returns the whole collection, documented unbounded-result behavior.
func (uc *SpeedTestUseCase) Query(ctx context.Context, traceID string, userID string) ([]schema.SpeedTest, *common.DetailedError) {
	start := time.Now()
	records, err := uc.repository.FindAll(ctx, traceID, userID)
	speedTestStoreTimer.Observe(time.Since(start).Seconds())
	if err != nil {
		uc.logger.Printf("{%s} speedtest query failed: %v", traceID, err)
		return nil, storeError(err)
	}
	if records == nil {
		records = []schema.SpeedTest{}
	}
	return records, nil
}
