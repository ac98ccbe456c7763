// Package track holds the domain model for the coordinate tracker: device
// identity, stored samples, and the per-device report view.
package track

import (
	"strings"
	"time"
)

// ReportPointLimit is the number of most-recent points a report shows per
// device.
const ReportPointLimit = 10

// NormalizeDeviceID canonicalizes a phone number for use as a storage key.
//
// The only normalization is stripping "+": "+5511999999999" and
// "5511999999999" identify the same device. Every read and write path must go
// through this function, otherwise the allow-list and the coordinate
// partitions drift apart.
func NormalizeDeviceID(raw string) string {
	return strings.ReplaceAll(raw, "+", "")
}

// Sample is one GPS fix as persisted.
//
// Invariants:
//   - DeviceID is normalized (no "+")
//   - SequenceKey is the fixed-width reverse-chronological key for StoredAt
//   - samples are never mutated after write, except by an upsert landing on
//     the exact same (DeviceID, SequenceKey)
type Sample struct {
	DeviceID    string
	SequenceKey string
	Latitude    float64
	Longitude   float64
	StoredAt    time.Time
}

// Point is one formatted report entry.
type Point struct {
	Latitude      float64 `json:"lat"`
	Longitude     float64 `json:"lng"`
	DisplayedTime string  `json:"time"`
}

// DeviceView is the per-device slice of a report: the device id plus its most
// recent points, newest first.
type DeviceView struct {
	DeviceID string  `json:"device_id"`
	Points   []Point `json:"points"`
}
