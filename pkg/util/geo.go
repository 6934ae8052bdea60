package util

import (
	"fmt"
	"strconv"
)

// SRID used for venue point geometries (WGS84).
const SRID = 4326

// PointEWKT encodes a coordinate pair as an EWKT point ("SRID=4326;POINT(lng lat)").
// Returns nil unless both coordinates are present.
func PointEWKT(latitude, longitude *float64) *string {
	if latitude == nil || longitude == nil {
		return nil
	}
	point := fmt.Sprintf("SRID=%d;POINT(%s %s)", SRID, formatCoord(*longitude), formatCoord(*latitude))
	return &point
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidCoordinates reports whether the pair lies inside WGS84 bounds.
func ValidCoordinates(latitude, longitude float64) bool {
	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}
