package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoJSONPointType is the only geometry type stored for test locations
const GeoJSONPointType = "Point"

type (
	// GeoPoint is a GeoJSON point, coordinates are [longitude, latitude]
	GeoPoint struct {
		Type        string    `bson:"type" json:"type"`
		Coordinates []float64 `bson:"coordinates" json:"coordinates"`
	}

	// SpeedTest is one network speed measurement reported by a device.
	// Records are immutable once written, there is no update path.
	SpeedTest struct {
		ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
		UserID        string             `bson:"userId" json:"userId"`
		DownloadSpeed float64            `bson:"downloadSpeed" json:"downloadSpeed"`
		UploadSpeed   float64            `bson:"uploadSpeed" json:"uploadSpeed"`
		Ping          float64            `bson:"ping" json:"ping"`
		Jitter        float64            `bson:"jitter" json:"jitter"`
		Carrier       string             `bson:"carrier" json:"carrier"`
		NetworkType   string             `bson:"networkType" json:"networkType"`
		TestedAt      time.Time          `bson:"testedAt" json:"testedAt"`
		Location      GeoPoint           `bson:"location" json:"location"`
		CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
		UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
	}
)

// DefaultLocation is stored when a submission carries no location
func DefaultLocation() GeoPoint {
	return GeoPoint{
		Type:        GeoJSONPointType,
		Coordinates: []float64{0, 0},
	}
}
