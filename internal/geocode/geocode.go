package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/voltguard/backend/internal/models"
)

var ErrNotFound = errors.New("geocode not found")

type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat float64, lng float64, displayName string, confidence float64, err error)
}

// BuildGeocodeQuery assembles the lookup string for an incident location.
func BuildGeocodeQuery(campus string, loc models.Location) string {
	parts := []string{}
	if v := strings.TrimSpace(campus); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(loc.Building); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(loc.Room); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}

// ShouldGeocode reports whether a location still needs coordinates.
func ShouldGeocode(loc models.Location, force bool) bool {
	if force {
		return true
	}
	return loc.GPS == nil
}
