package models

// Location is a geocoding match: a display name plus coordinates.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions holds the readings of interest from a forecast response.
// Pointers distinguish "upstream omitted the value" from zero readings.
type CurrentConditions struct {
	Temperature *float64 `json:"temperature"`
	WindSpeed   *float64 `json:"windspeed"`
}
