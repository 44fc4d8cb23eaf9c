// internal/types/ids.go
package types

import (
	"github.com/google/uuid"
)

type SpaceID string
type MessageID string
type TrackingID string

// NewTrackingID returns a fresh identifier for correlating one API request
// with the platform's server-side logs.
func NewTrackingID() TrackingID {
	return TrackingID("cardcourier_" + uuid.New().String())
}
