// Package jobs holds the MapReduce job definitions for the flight data
// analyses. Jobs are stateless value types so they can be called from any
// number of workers at once.
package jobs

import (
	"github.com/CalsRain408/determine-numbers-of-flights/internal/mapreduce"
	"github.com/CalsRain408/determine-numbers-of-flights/internal/types"
)

// Job is the concrete job shape shared by all flight-data analyses:
// passenger records in, string keys, integer counts out.
type Job = mapreduce.Job[types.PassengerRecord, string, int, int]

var (
	_ Job = FlightCount{}
	_ Job = AirportDepartures{}
)

// FlightCount counts flights per passenger ("most frequent flyer").
type FlightCount struct{}

// Map emits (passengerID, 1) for the record's flight.
func (FlightCount) Map(rec types.PassengerRecord) ([]mapreduce.KeyValue[string, int], error) {
	return []mapreduce.KeyValue[string, int]{{Key: rec.PassengerID, Value: 1}}, nil
}

// Reduce sums the per-flight counts for one passenger.
func (FlightCount) Reduce(_ string, values []int) (int, error) {
	return sum(values), nil
}

// AirportDepartures counts flights departing from each airport. Airports
// with no departures never reach the engine; the output layer backfills
// them from the airport table.
type AirportDepartures struct{}

// Map emits (fromAirport, 1) for the record's flight.
func (AirportDepartures) Map(rec types.PassengerRecord) ([]mapreduce.KeyValue[string, int], error) {
	return []mapreduce.KeyValue[string, int]{{Key: rec.FromAirport, Value: 1}}, nil
}

// Reduce sums the departure counts for one airport.
func (AirportDepartures) Reduce(_ string, values []int) (int, error) {
	return sum(values), nil
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
