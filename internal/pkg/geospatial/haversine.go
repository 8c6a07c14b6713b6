package geospatial

import "math"

// EarthRadiusKm is the IUGG mean Earth radius, the same sphere PostGIS
// uses for geography distances with use_spheroid = false.
const EarthRadiusKm = 6371.0088

// HaversineKm calculates the great-circle distance in kilometres between two points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Box is a latitude/longitude window. MinLon may exceed MaxLon when the
// window wraps the antimeridian.
type Box struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// BoundingBox returns a window that contains every point within radiusKm
// of (lat, lon). It over-approximates; callers still check the exact distance.
func BoundingBox(lat, lon, radiusKm float64) Box {
	latDelta := radiusKm / EarthRadiusKm * 180 / math.Pi

	minLat, maxLat := lat-latDelta, lat+latDelta
	if minLat <= -90 || maxLat >= 90 {
		// circle reaches a pole: every longitude qualifies
		return Box{
			MinLat: math.Max(minLat, -90), MinLon: -180,
			MaxLat: math.Min(maxLat, 90), MaxLon: 180,
		}
	}

	// widest longitude span occurs at the latitude edge nearest a pole
	edge := math.Max(math.Abs(minLat), math.Abs(maxLat))
	lonDelta := latDelta / math.Cos(toRad(edge))
	if lonDelta >= 180 {
		return Box{MinLat: minLat, MinLon: -180, MaxLat: maxLat, MaxLon: 180}
	}

	return Box{
		MinLat: minLat, MinLon: wrapLon(lon - lonDelta),
		MaxLat: maxLat, MaxLon: wrapLon(lon + lonDelta),
	}
}

// Contains reports whether the point lies within the window.
func (b Box) Contains(lat, lon float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if b.MinLon <= b.MaxLon {
		return lon >= b.MinLon && lon <= b.MaxLon
	}
	return lon >= b.MinLon || lon <= b.MaxLon
}

func wrapLon(lon float64) float64 {
	switch {
	case lon < -180:
		return lon + 360
	case lon > 180:
		return lon - 360
	}
	return lon
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
