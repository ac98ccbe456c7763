// Package models defines the wire-level request shapes for the tracker.
package models

import (
	dErrors "geotrack/pkg/domain-errors"
)

// CoordinateSubmission is the ingestion payload. The capitalized JSON field
// names are the contract with the deployed mobile client and must not change.
type CoordinateSubmission struct {
	Celular   string  `json:"Celular"`
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
}

// Validate applies the field rules: the device id must be non-empty and both
// coordinates nonzero.
//
// Zero is treated as "absent", not as a legitimate coordinate. A fix exactly
// on the equator or prime meridian is therefore rejected; the deployed
// clients rely on this sentinel to mask missing GPS reads, so it stays.
func (c CoordinateSubmission) Validate() error {
	if c.Celular == "" {
		return dErrors.New(dErrors.CodeInvalidFields, "Celular is required")
	}
	if c.Latitude == 0 || c.Longitude == 0 {
		return dErrors.New(dErrors.CodeInvalidFields, "Latitude and Longitude are required and must be nonzero")
	}
	return nil
}
