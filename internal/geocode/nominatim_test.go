package geocode

import "testing"

func TestParseNominatimItems(t *testing.T) {
	items := []nominatimItem{
		{
			Lat:         "26.5123",
			Lon:         "80.2329",
			DisplayName: "Kanpur, Uttar Pradesh, India",
			Importance:  0.68,
		},
	}
	res, err := parseNominatimItems(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Lat != 26.5123 || res.Lng != 80.2329 {
		t.Fatalf("unexpected coordinates: %+v", res)
	}
	if res.Confidence != 0.68 {
		t.Fatalf("unexpected confidence: %f", res.Confidence)
	}
}

func TestParseNominatimItemsEmpty(t *testing.T) {
	if _, err := parseNominatimItems(nil); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
