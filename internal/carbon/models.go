// Package carbon estimates a yearly CO2e footprint from quiz answers,
// combining remote per-category estimates with deterministic fallback formulas.
package carbon

// Category names a breakdown entry.
type Category string

const (
	CategoryDriving     Category = "driving"
	CategoryElectricity Category = "electricity"
	CategoryHeating     Category = "heating"
	CategoryFlights     Category = "flights"
)

// Estimate is a yearly footprint with its per-category decomposition.
// Categories that do not apply are absent from the breakdown, not zero-filled.
type Estimate struct {
	// KgCO2ePerYear is the total yearly footprint, rounded to the nearest
	// integer and clamped at a minimum of 0.
	KgCO2ePerYear int `json:"kgCO2ePerYear"`

	// Breakdown maps each applicable category to its kg CO2e contribution.
	Breakdown map[Category]float64 `json:"breakdown"`
}

// Inputs are the quiz fields the estimator consumes.
type Inputs struct {
	WeeklyMilesDriven       float64
	ElectricityKwhPerMonth  float64
	HomeHeating             string
	FlightsShortHaulPerYear int
}
