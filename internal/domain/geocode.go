package domain

import (
	"context"
	"log/slog"
)

// EnrichLocation attaches place details to a location. ZIPs with a known
// centroid are reverse geocoded; unknown ZIPs are forward geocoded by postal
// code. A nil geocoder or a failed lookup leaves the location as it was apart
// from GeoSource (graceful degradation).
func EnrichLocation(ctx context.Context, loc Location, geocoder Geocoder, logger *slog.Logger) Location {
	if geocoder == nil {
		return loc
	}

	// Reverse geocode: centroid → place details.
	if loc.HasCoords() {
		result, err := geocoder.ReverseGeocode(ctx, loc.Latitude, loc.Longitude)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"zipcode", loc.Zipcode,
				"lat", loc.Latitude,
				"lon", loc.Longitude,
				"error", err,
			)
			loc.GeoSource = "failed"
			return loc
		}
		if result.FormattedAddress != "" {
			loc.FormattedAddress = result.FormattedAddress
			loc.PlaceName = result.PlaceName
			loc.GeoSource = "reverse"
			return loc
		}
		loc.GeoSource = "original"
		return loc
	}

	if loc.Zipcode == "" {
		loc.GeoSource = "original"
		return loc
	}

	// Forward geocode: postal code → centroid.
	result, err := geocoder.GeocodeZip(ctx, loc.Zipcode)
	if err != nil {
		logger.Warn("zip geocoding failed",
			"zipcode", loc.Zipcode,
			"error", err,
		)
		loc.GeoSource = "failed"
		return loc
	}
	if result.Lat != 0 || result.Lon != 0 {
		loc.Latitude = result.Lat
		loc.Longitude = result.Lon
		loc.FormattedAddress = result.FormattedAddress
		loc.PlaceName = result.PlaceName
		loc.GeoSource = "forward"
		return loc
	}
	loc.GeoSource = "original"
	return loc
}
