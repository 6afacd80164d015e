// Package quiz defines the lifestyle quiz model and its input validation.
package quiz

// Diet is a self-reported diet type.
type Diet string

const (
	DietOmnivore    Diet = "omnivore"
	DietPescatarian Diet = "pescatarian"
	DietVegetarian  Diet = "vegetarian"
	DietVegan       Diet = "vegan"
)

// Heating is a home heating source.
type Heating string

const (
	HeatingGas      Heating = "gas"
	HeatingElectric Heating = "electric"
	HeatingHeatPump Heating = "heat_pump"
	HeatingOther    Heating = "other"
)

// Recycling is a self-reported recycling habit.
type Recycling string

const (
	RecyclingNever     Recycling = "never"
	RecyclingSometimes Recycling = "sometimes"
	RecyclingOften     Recycling = "often"
	RecyclingAlways    Recycling = "always"
)

// TransportMode is the dominant mode of day-to-day transport.
type TransportMode string

const (
	TransportCar           TransportMode = "car"
	TransportPublicTransit TransportMode = "public_transit"
	TransportBikeWalk      TransportMode = "bike_walk"
	TransportMixed         TransportMode = "mixed"
)

// Submission carries the raw field values as received from the form layer.
// Pointers distinguish absent fields from zero values.
type Submission struct {
	Diet                    *string  `json:"diet" validate:"required,oneof=omnivore pescatarian vegetarian vegan"`
	WeeklyMilesDriven       *float64 `json:"weeklyMilesDriven" validate:"required,gte=0,lte=5000"`
	ElectricityKwhPerMonth  *float64 `json:"electricityKwhPerMonth" validate:"required,gte=0,lte=20000"`
	HomeHeating             *string  `json:"homeHeating" validate:"required,oneof=gas electric heat_pump other"`
	FlightsShortHaulPerYear *float64 `json:"flightsShortHaulPerYear" validate:"required,integral,gte=0,lte=100"`
	RecyclingHabit          *string  `json:"recyclingHabit" validate:"required,oneof=never sometimes often always"`
	TransportMode           *string  `json:"transportMode" validate:"required,oneof=car public_transit bike_walk mixed"`
}

// Answers is the fully-typed quiz record. Immutable once validated; created
// per submission and discarded after the response is sent.
type Answers struct {
	Diet                    Diet          `json:"diet"`
	WeeklyMilesDriven       float64       `json:"weeklyMilesDriven"`
	ElectricityKwhPerMonth  float64       `json:"electricityKwhPerMonth"`
	HomeHeating             Heating       `json:"homeHeating"`
	FlightsShortHaulPerYear int           `json:"flightsShortHaulPerYear"`
	RecyclingHabit          Recycling     `json:"recyclingHabit"`
	TransportMode           TransportMode `json:"transportMode"`
}
