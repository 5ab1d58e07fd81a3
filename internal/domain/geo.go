package domain

// PostalRecord is one row of the GeoNames postal code file.
type PostalRecord struct {
	CountryCode string
	Zipcode     string
	City        string
	StateName   string
	StateCode   string
	County      string
	CountyCode  string
	Latitude    float64
	Longitude   float64
	Accuracy    string
}

// ZipCentroid is the representative coordinate of a ZIP code.
type ZipCentroid struct {
	Zipcode   string  `json:"zip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Centroid drops everything but the ZIP and its coordinates.
func (r PostalRecord) Centroid() ZipCentroid {
	return ZipCentroid{Zipcode: r.Zipcode, Latitude: r.Latitude, Longitude: r.Longitude}
}
