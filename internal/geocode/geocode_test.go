package geocode

import (
	"testing"

	"github.com/voltguard/backend/internal/models"
)

func TestBuildGeocodeQuery(t *testing.T) {
	q := BuildGeocodeQuery("NIT Campus", models.Location{Building: "Hostel A", Room: "Common Room"})
	if q != "NIT Campus, Hostel A, Common Room" {
		t.Fatalf("unexpected query: %s", q)
	}
}

func TestBuildGeocodeQuerySkipsEmptyParts(t *testing.T) {
	q := BuildGeocodeQuery("", models.Location{Building: "Library"})
	if q != "Library" {
		t.Fatalf("unexpected query: %s", q)
	}
}

func TestShouldGeocodeSkipWhenGPSExists(t *testing.T) {
	loc := models.Location{Building: "Hostel A", GPS: &models.GPS{Lat: 26.5, Lng: 80.2}}
	if ShouldGeocode(loc, false) {
		t.Fatalf("expected geocode to be skipped when gps exists")
	}
	if !ShouldGeocode(loc, true) {
		t.Fatalf("expected geocode when force is true")
	}
	if !ShouldGeocode(models.Location{Building: "Hostel A"}, false) {
		t.Fatalf("expected geocode when gps missing")
	}
}
