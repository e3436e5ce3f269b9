package schema

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	// PrivacySettings is the per-user settings document, at most one per
	// userId (unique index).
	//
	// The booleans are pointers: a settings document created through the
	// update path only carries the fields the caller supplied, the others
	// stay absent in store until set.
	PrivacySettings struct {
		ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
		UserID               string             `bson:"userId" json:"userId"`
		BackgroundMonitoring *bool              `bson:"backgroundMonitoring,omitempty" json:"backgroundMonitoring,omitempty"`
		ShareAnonymousData   *bool              `bson:"shareAnonymousData,omitempty" json:"shareAnonymousData,omitempty"`
		SaveLocationHistory  *bool              `bson:"saveLocationHistory,omitempty" json:"saveLocationHistory,omitempty"`
	}
)

// PrivacySettingsPatch is the subset of settings fields supplied by an
// update. Nil fields are left untouched in store.
type PrivacySettingsPatch struct {
	BackgroundMonitoring *bool `bson:"backgroundMonitoring,omitempty" json:"backgroundMonitoring,omitempty"`
	ShareAnonymousData   *bool `bson:"shareAnonymousData,omitempty" json:"shareAnonymousData,omitempty"`
	SaveLocationHistory  *bool `bson:"saveLocationHistory,omitempty" json:"saveLocationHistory,omitempty"`
}

// IsEmpty reports whether the patch supplies no field at all
func (p PrivacySettingsPatch) IsEmpty() bool {
	return p.BackgroundMonitoring == nil && p.ShareAnonymousData == nil && p.SaveLocationHistory == nil
}

// DefaultPrivacySettings are the values seeded when a document is lazily
// created on first read. The update path deliberately does not apply them.
func DefaultPrivacySettings(userID string) PrivacySettings {
	backgroundMonitoring := true
	shareAnonymousData := false
	saveLocationHistory := true
	return PrivacySettings{
		UserID:               userID,
		BackgroundMonitoring: &backgroundMonitoring,
		ShareAnonymousData:   &shareAnonymousData,
		SaveLocationHistory:  &saveLocationHistory,
	}
}
