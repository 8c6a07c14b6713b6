package geospatial

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"same point", 10, 10, 10, 10, 0},
		{"one degree of latitude", 0, 0, 1, 0, 111.195},
		{"quarter meridian", 0, 0, 90, 0, 10007.557},
		{"antipodes", 0, 0, 0, 180, 20015.115},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.want) > 0.01 {
				t.Errorf("HaversineKm = %.3f, want %.3f", got, tc.want)
			}
		})
	}
}

func TestBoundingBox_ContainsCircle(t *testing.T) {
	centers := [][2]float64{{10, 10}, {43.26, -2.93}, {-60, 179.9}, {89.9, 0}, {0, -179.99}}
	for _, c := range centers {
		box := BoundingBox(c[0], c[1], 50)
		// sample points on the circle of radius 49.9 km
		for bearing := 0.0; bearing < 360; bearing += 15 {
			lat, lon := destination(c[0], c[1], bearing, 49.9)
			if !box.Contains(lat, lon) {
				t.Errorf("box around %v misses point %.4f,%.4f (bearing %v)", c, lat, lon, bearing)
			}
		}
	}
}

func TestBoundingBox_Excludes(t *testing.T) {
	box := BoundingBox(10, 10, 5)
	if box.Contains(11, 10) {
		t.Error("expected 111 km north to fall outside a 5 km box")
	}
	if box.Contains(10, -170) {
		t.Error("expected the far side of the globe to fall outside")
	}
}

func destination(lat, lon, bearingDeg, distKm float64) (float64, float64) {
	d := distKm / EarthRadiusKm
	br := toRad(bearingDeg)
	lat1, lon1 := toRad(lat), toRad(lon)
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(br))
	lon2 := lon1 + math.Atan2(math.Sin(br)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))
	return lat2 * 180 / math.Pi, wrapLon(lon2 * 180 / math.Pi)
}
