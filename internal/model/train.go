package model

// Train mirrors a row of the `trains` table. Trains are provisioned out of
// band; the application never writes them.
//
// Fields:
//
//	TrainNumber     – primary key (e.g. "12951").
//	TrainName       – display name.
//	SourceName      – origin station display name.
//	DestinationName – terminus station display name.
//	Days            – operating days as recorded (free text, nullable).
type Train struct {
	TrainNumber     string  `json:"train_number"`
	TrainName       *string `json:"train_name"`
	SourceName      *string `json:"source_station_name"`
	DestinationName *string `json:"destination_station_name"`
	Days            *string `json:"days"`
}

// ScheduleStop mirrors a row of `train_schedule`: one station visit of a
// train with its own per-class seat counters. Nullable columns stay
// pointers so the JSON output keeps the store's nulls.
type ScheduleStop struct {
	ID            int64   `json:"id"`
	TrainNumber   string  `json:"train_number"`
	StopNumber    int     `json:"stop_number"`
	StationCode   *string `json:"station_code"`
	StationName   *string `json:"station_name"`
	ArrivalTime   *string `json:"arrival_time"`
	DepartureTime *string `json:"departure_time"`
	DistanceKM    *int    `json:"distance_km"`
	Seats1A       *int    `json:"seats_1a"`
	Seats2A       *int    `json:"seats_2a"`
	Seats3A       *int    `json:"seats_3a"`
	SeatsSL       *int    `json:"seats_sl"`
}
