package infrastructure

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/netpulse/netpulse-api/schema"
)

// In-memory repositories use for unit tests. They reproduce the storage
// contract, including the atomic upsert semantics, behind a mutex.

type MockSpeedTestRepository struct {
	mu      sync.Mutex
	Records []schema.SpeedTest
	Err     error
}

func NewMockSpeedTestRepository() *MockSpeedTestRepository {
	return &MockSpeedTestRepository{}
}

func (m *MockSpeedTestRepository) Insert(ctx context.Context, traceID string, record *schema.SpeedTest) (*schema.SpeedTest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	now := time.Now().UTC()
	record.ID = primitive.NewObjectID()
	record.CreatedAt = now
	record.UpdatedAt = now
	m.Records = append(m.Records, *record)
	return record, nil
}

func (m *MockSpeedTestRepository) FindAll(ctx context.Context, traceID string, userID string) ([]schema.SpeedTest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	records := []schema.SpeedTest{}
	for _, r := range m.Records {
		if userID == "" || r.UserID == userID {
			records = append(records, r)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TestedAt.After(records[j].TestedAt)
	})
	return records, nil
}

type MockFeedbackRepository struct {
	mu      sync.Mutex
	Records []schema.Feedback
	Err     error
}

func NewMockFeedbackRepository() *MockFeedbackRepository {
	return &MockFeedbackRepository{}
}

func (m *MockFeedbackRepository) Insert(ctx context.Context, traceID string, record *schema.Feedback) (*schema.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	now := time.Now().UTC()
	record.ID = primitive.NewObjectID()
	record.CreatedAt = now
	record.UpdatedAt = now
	m.Records = append(m.Records, *record)
	return record, nil
}

type MockPrivacySettingsRepository struct {
	mu        sync.Mutex
	documents map[string]schema.PrivacySettings
	Err       error
}

func NewMockPrivacySettingsRepository() *MockPrivacySettingsRepository {
	return &MockPrivacySettingsRepository{
		documents: make(map[string]schema.PrivacySettings),
	}
}

func (m *MockPrivacySettingsRepository) GetOrCreate(ctx context.Context, traceID string, defaults schema.PrivacySettings) (*schema.PrivacySettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if existing, ok := m.documents[defaults.UserID]; ok {
		return &existing, nil
	}
	defaults.ID = primitive.NewObjectID()
	m.documents[defaults.UserID] = defaults
	settings := defaults
	return &settings, nil
}

func (m *MockPrivacySettingsRepository) Upsert(ctx context.Context, traceID string, userID string, patch schema.PrivacySettingsPatch) (*schema.PrivacySettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	settings, ok := m.documents[userID]
	if !ok {
		settings = schema.PrivacySettings{ID: primitive.NewObjectID(), UserID: userID}
	}
	if patch.BackgroundMonitoring != nil {
		v := *patch.BackgroundMonitoring
		settings.BackgroundMonitoring = &v
	}
	if patch.ShareAnonymousData != nil {
		v := *patch.ShareAnonymousData
		settings.ShareAnonymousData = &v
	}
	if patch.SaveLocationHistory != nil {
		v := *patch.SaveLocationHistory
		settings.SaveLocationHistory = &v
	}
	m.documents[userID] = settings
	result := settings
	return &result, nil
}

// StoredCount returns how many documents exist for userID, to assert the
// one-document-per-user invariant in tests
func (m *MockPrivacySettingsRepository) StoredCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[userID]; ok {
		return 1
	}
	return 0
}
