// Package enginesim computes steady-state performance metrics of a four-stroke
// reciprocating engine (power, torque, mean effective pressures, efficiencies,
// fuel flow) from its geometry and operating point. All internal calculations
// are in SI units; the caller-facing units follow common engine-building usage
// (millimeters, g/kWh, RPM).
package enginesim

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFuel is returned when a configuration names a fuel that is not in
// the registry. This is fatal to model construction, never defaulted.
var ErrUnknownFuel = errors.New("undefined fuel")

// Fuel defines the combustion-relevant properties of a fuel.
type Fuel struct {
	Name      string
	LHV       float64 // Lower heating value in J/kg
	Density   float64 // kg/L
	StoichAFR float64 // Stoichiometric air-fuel mass ratio
}

// String implements the Stringer interface.
func (f Fuel) String() string {
	return f.Name + " fuel"
}

// Equals returns whether the provided fuel carries the same properties.
func (f Fuel) Equals(o Fuel) bool {
	return f.Name == o.Name && f.LHV == o.LHV && f.Density == o.Density && f.StoichAFR == o.StoichAFR
}

// FuelFromString returns the fuel from its name.
func FuelFromString(name string) (Fuel, error) {
	switch strings.ToLower(name) {
	case "gasoline":
		return Gasoline, nil
	case "diesel":
		return Diesel, nil
	case "e85":
		return E85, nil
	default:
		return Fuel{}, fmt.Errorf("%w '%s'", ErrUnknownFuel, name)
	}
}

/* Definitions */

// Gasoline is the pump staple.
var Gasoline = Fuel{"Gasoline", 44.0e6, 0.75, 14.7}

// Diesel carries more energy per liter but burns lean.
var Diesel = Fuel{"Diesel", 42.5e6, 0.85, 14.5}

// E85 is mostly ethanol: low heating value, so it runs rich.
var E85 = Fuel{"E85", 27.0e6, 0.78, 9.7}
