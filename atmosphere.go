package enginesim

import "math"

// International Standard Atmosphere, troposphere layer.
const (
	isaSeaLevelPressure = 101325.0 // Pa
	isaSeaLevelTemp     = 288.15   // K
	isaGravity          = 9.80665  // m/s²
	isaLapseRate        = 0.0065   // K/m
	isaGasConstant      = 287.058  // J/(kg·K), dry air
)

// ISAPressure returns the static pressure in Pa at the given altitude from
// the barometric formula with the standard lapse rate. Valid through the
// troposphere; altitudes past the 11 km tropopause are clipped there.
func ISAPressure(altitudeM float64) float64 {
	if altitudeM > 11000 {
		altitudeM = 11000
	}
	base := 1 - isaLapseRate*altitudeM/isaSeaLevelTemp
	if base <= 0 {
		return 0
	}
	return isaSeaLevelPressure * math.Pow(base, isaGravity/(isaGasConstant*isaLapseRate))
}

// ISADensity returns the air density in kg/m³ at the given altitude, with the
// ideal-gas law evaluated at the supplied ambient temperature rather than the
// standard one. This is the scalar the model's AirDensity input expects.
func ISADensity(altitudeM, tempC float64) float64 {
	tempK := tempC + 273.15
	if tempK <= 0 {
		return 0
	}
	return ISAPressure(altitudeM) / (isaGasConstant * tempK)
}

// ManifoldRatioFromBoost converts a gauge boost pressure in kPa to the
// manifold-to-ambient pressure ratio the model consumes. Zero boost is 1.0,
// naturally aspirated.
func ManifoldRatioFromBoost(boostKPa float64) float64 {
	return 1 + boostKPa/101.325
}
