package enginesim

import (
	"os"

	"github.com/spf13/viper"
)

var (
	calLoaded = false
	loadedCal = Calibration{}
)

// Calibration gathers every tunable constant of the model in one place, so
// recalibrating against a dyno sheet is a single edit point instead of a hunt
// for in-function literals.
type Calibration struct {
	// Built-in volumetric efficiency curve: a two-sided Gaussian bump over
	// RPM, peaking at VEPeakFrac of redline.
	VEFloor          float64
	VEAmplitude      float64
	VEPeakFrac       float64
	VESigmaLowRatio  float64 // decay width below the peak, as a fraction of peak RPM
	VESigmaHighRatio float64 // decay width at and above the peak

	// Linear BSFC economy correction around the VE pivot.
	BSFCSlope float64
	BSFCPivot float64

	// Watson-Heywood friction model: FMEP(kPa) = A + B·Sp + C·Sp² with the
	// mean piston speed Sp in m/s.
	FMEPConstant  float64 // kPa
	FMEPLinear    float64 // kPa/(m/s)
	FMEPQuadratic float64 // kPa/(m/s)²

	// Specific-heat ratio of the combustion gas for the ideal Otto cycle.
	// Calibrated below the ideal-air 1.4.
	Gamma float64

	// Optional VE/BSFC map file consumed at model construction.
	MapsPath string
}

// DefaultCalibration returns the built-in constants.
func DefaultCalibration() Calibration {
	return Calibration{
		VEFloor:          0.60,
		VEAmplitude:      0.40,
		VEPeakFrac:       0.6,
		VESigmaLowRatio:  0.25,
		VESigmaHighRatio: 0.18,
		BSFCSlope:        0.10,
		BSFCPivot:        0.60,
		FMEPConstant:     30,
		FMEPLinear:       1.5,
		FMEPQuadratic:    2e-4,
		Gamma:            1.35,
		MapsPath:         "./maps/ve_bsfc.csv",
	}
}

// LoadCalibration returns the process calibration. If the environment variable
// `ENGINESIM_CONFIG` names a directory holding an enginesim.toml, its keys
// override the defaults; otherwise the defaults are used as-is. The result is
// loaded once and reused.
func LoadCalibration() Calibration {
	if calLoaded {
		return loadedCal
	}
	loadedCal = loadCalibration(os.Getenv("ENGINESIM_CONFIG"))
	calLoaded = true
	return loadedCal
}

func loadCalibration(confPath string) Calibration {
	cal := DefaultCalibration()
	if confPath == "" {
		return cal
	}
	v := viper.New()
	v.SetConfigName("enginesim")
	v.AddConfigPath(confPath)
	if err := v.ReadInConfig(); err != nil {
		diag.Log("config", confPath, "fallback", "defaults", "err", err)
		return cal
	}
	v.SetDefault("ve.floor", cal.VEFloor)
	v.SetDefault("ve.amplitude", cal.VEAmplitude)
	v.SetDefault("ve.peak_frac", cal.VEPeakFrac)
	v.SetDefault("ve.sigma_low_ratio", cal.VESigmaLowRatio)
	v.SetDefault("ve.sigma_high_ratio", cal.VESigmaHighRatio)
	v.SetDefault("bsfc.slope", cal.BSFCSlope)
	v.SetDefault("bsfc.pivot", cal.BSFCPivot)
	v.SetDefault("friction.constant", cal.FMEPConstant)
	v.SetDefault("friction.linear", cal.FMEPLinear)
	v.SetDefault("friction.quadratic", cal.FMEPQuadratic)
	v.SetDefault("thermo.gamma", cal.Gamma)
	v.SetDefault("maps.path", cal.MapsPath)
	cal.VEFloor = v.GetFloat64("ve.floor")
	cal.VEAmplitude = v.GetFloat64("ve.amplitude")
	cal.VEPeakFrac = v.GetFloat64("ve.peak_frac")
	cal.VESigmaLowRatio = v.GetFloat64("ve.sigma_low_ratio")
	cal.VESigmaHighRatio = v.GetFloat64("ve.sigma_high_ratio")
	cal.BSFCSlope = v.GetFloat64("bsfc.slope")
	cal.BSFCPivot = v.GetFloat64("bsfc.pivot")
	cal.FMEPConstant = v.GetFloat64("friction.constant")
	cal.FMEPLinear = v.GetFloat64("friction.linear")
	cal.FMEPQuadratic = v.GetFloat64("friction.quadratic")
	cal.Gamma = v.GetFloat64("thermo.gamma")
	cal.MapsPath = v.GetString("maps.path")
	return cal
}
