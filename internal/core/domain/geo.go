package domain

import "fmt"

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Validate checks that the point lies within latitude [-90,90] and
// longitude [-180,180].
func (p GeoPoint) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidInput, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidInput, p.Lon)
	}
	return nil
}

// NearQuery describes a proximity search around Center.
// Tag and NameContains are optional and mutually combinable.
type NearQuery struct {
	Center       GeoPoint
	RadiusKm     float64
	Tag          string
	NameContains string
}

// MaxRadiusKm is half of Earth's circumference; anything larger covers the globe.
const MaxRadiusKm = 20038.0

// Validate checks the center point and the radius.
func (q NearQuery) Validate() error {
	if err := q.Center.Validate(); err != nil {
		return err
	}
	if q.RadiusKm <= 0 || q.RadiusKm > MaxRadiusKm {
		return fmt.Errorf("%w: radius must be in (0, %.0f] km, got %v", ErrInvalidInput, MaxRadiusKm, q.RadiusKm)
	}
	return nil
}
