package model

// Station is a row of the `stations` directory used for autocomplete.
type Station struct {
	StationName string `json:"station_name"`
	StationCode string `json:"station_code"`
}
