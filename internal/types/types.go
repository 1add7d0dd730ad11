package types

import "time"

// PassengerRecord is one row of the passenger flight data file.
// Records are parsed and validated up front; the engine treats them as opaque.
type PassengerRecord struct {
	PassengerID string
	FlightID    string
	FromAirport string
	DestAirport string
	// DepartureTime is the departure as unix seconds; Departure is the same
	// instant as a time.Time.
	DepartureTime int64
	Departure     time.Time
	// FlightTime is the flight duration in minutes.
	FlightTime int
}

// Airport is one row of the airport data file, keyed by IATA code.
type Airport struct {
	Name      string
	Code      string
	Latitude  float64
	Longitude float64
}
