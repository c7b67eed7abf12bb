package enginesim

import (
	"math"
)

const (
	// gPerKWhToKgPerJ converts a g/kWh specific consumption to kg/J.
	gPerKWhToKgPerJ = 1.0 / (1000 * 3.6e6)
	// WattsPerHP converts mechanical horsepower to watts.
	WattsPerHP = 745.7
)

// EngineConfig carries the caller-facing engine parameters for one
// evaluation. Bore and stroke are in millimeters and the nominal BSFC in
// g/kWh; conversion to SI happens once at model construction. The config is
// never mutated by the model.
type EngineConfig struct {
	Cylinders        int
	BoreMM           float64
	StrokeMM         float64
	CompressionRatio float64
	RedlineRPM       float64
	NominalBSFC      float64 // g/kWh at the torque peak
	AFR              float64
	FuelType         string
	AirDensity       float64 // ambient, kg/m³
	// ManifoldPressureRatio is manifold over ambient pressure; 1.0 for a
	// naturally aspirated engine. Negative values are treated as 0.
	ManifoldPressureRatio float64
	// ThrottleScaler scales the effective charge density, clamped to [0, 1].
	ThrottleScaler float64
}

// PerformanceResult is the read-only snapshot of one steady-state evaluation.
// Efficiencies are percentages, pressures kPa, powers kW. Under well-formed
// inputs no field is NaN or negative: every guarded division degenerates to 0.
type PerformanceResult struct {
	DisplacementL             float64 `json:"displacement_l"`
	AirMassFlow               float64 `json:"air_mass_flow_kg_s"`
	FuelMassFlow              float64 `json:"fuel_mass_flow_kg_s"`
	FuelFlowLHr               float64 `json:"fuel_flow_l_hr"`
	BrakePowerKW              float64 `json:"brake_power_kw"`
	IndicatedPowerKW          float64 `json:"indicated_power_kw"`
	TorqueNm                  float64 `json:"torque_nm"`
	BMEPkPa                   float64 `json:"bmep_kpa"`
	IMEPkPa                   float64 `json:"imep_kpa"`
	FMEPkPa                   float64 `json:"fmep_kpa"`
	BSFCgkWh                  float64 `json:"bsfc_g_kwh"`
	MechanicalEfficiencyPct   float64 `json:"mechanical_efficiency_percent"`
	BrakeThermalEfficiencyPct float64 `json:"brake_thermal_efficiency_percent"`
	OttoEfficiencyPct         float64 `json:"thermal_efficiency_percent"`
	VolumetricEfficiencyPct   float64 `json:"volumetric_efficiency_percent"`
}

// PerformanceModel evaluates one engine configuration at one operating point.
// The full calculation runs once at construction and is cached; the model is
// immutable afterwards, so independent instances may be built concurrently
// without synchronization (one per RPM point of a sweep, say).
type PerformanceModel struct {
	cfg  EngineConfig
	rpm  float64
	fuel Fuel
	cal  Calibration
	ve   veSource
	bsfc bsfcSource
	res  PerformanceResult
}

// NewPerformanceModel builds a model with the process calibration and the
// optional VE/BSFC map at the calibration's maps path. The only fatal error is
// an unknown fuel type.
func NewPerformanceModel(cfg EngineConfig, rpm float64) (*PerformanceModel, error) {
	cal := LoadCalibration()
	return NewPerformanceModelWith(cal, LoadCurveMap(cal.MapsPath), cfg, rpm)
}

// NewPerformanceModelWith is the injection point: calibration and curve map
// are supplied by the caller. A nil map selects the built-in formula curves.
func NewPerformanceModelWith(cal Calibration, maps *CurveMap, cfg EngineConfig, rpm float64) (*PerformanceModel, error) {
	fuel, err := FuelFromString(cfg.FuelType)
	if err != nil {
		return nil, err
	}
	m := &PerformanceModel{cfg: cfg, rpm: rpm, fuel: fuel, cal: cal}
	if maps != nil && maps.VE != nil {
		m.ve = tableVE{maps.VE}
	} else {
		m.ve = formulaVE{redline: cfg.RedlineRPM, cal: cal}
	}
	if maps != nil && maps.BSFC != nil {
		m.bsfc = tableBSFC{maps.BSFC}
	} else {
		m.bsfc = formulaBSFC{nominal: cfg.NominalBSFC * gPerKWhToKgPerJ, ve: m.ve, cal: cal}
	}
	m.res = m.compute()
	return m, nil
}

// Results returns the cached performance snapshot.
func (m *PerformanceModel) Results() PerformanceResult {
	return m.res
}

// RPM returns the operating point this model was built for.
func (m *PerformanceModel) RPM() float64 {
	return m.rpm
}

// Fuel returns the resolved fuel.
func (m *PerformanceModel) Fuel() Fuel {
	return m.fuel
}

func (m *PerformanceModel) compute() PerformanceResult {
	boreM := m.cfg.BoreMM / 1000
	strokeM := m.cfg.StrokeMM / 1000
	pistonArea := math.Pi * (boreM / 2) * (boreM / 2)
	vd := pistonArea * strokeM * float64(m.cfg.Cylinders) // total displaced volume, m³

	veFrac := m.ve.Eval(m.rpm)
	bsfcKgJ := m.bsfc.Eval(m.rpm)

	// One intake stroke per two crank revolutions: RPM/120 cycles per second.
	rhoEff := m.cfg.AirDensity * posOrZero(m.cfg.ManifoldPressureRatio) * clamp01(m.cfg.ThrottleScaler)
	airFlow := m.rpm / 120 * vd * rhoEff * veFrac
	var fuelFlow float64
	if m.cfg.AFR > 0 {
		fuelFlow = airFlow / m.cfg.AFR
	}
	var fuelLHr float64
	if m.fuel.Density > 0 {
		fuelLHr = fuelFlow / m.fuel.Density * 3600
	}

	// Brake power from the fuel energy rate: BSFC is mass of fuel per unit of
	// brake energy, so power is fuel flow over specific consumption.
	var brakeW float64
	if bsfcKgJ > 0 {
		brakeW = fuelFlow / bsfcKgJ
	}
	omega := 2 * math.Pi * m.rpm / 60
	var torqueNm float64
	if omega > 0 {
		torqueNm = brakeW / omega
	}

	var bmepPa float64
	if vd > 0 {
		bmepPa = 2 * math.Pi * torqueNm / vd
	}

	pistonSpeed := 2 * strokeM * m.rpm / 60
	fmepKPa := m.cal.FMEPConstant + m.cal.FMEPLinear*pistonSpeed + m.cal.FMEPQuadratic*pistonSpeed*pistonSpeed
	frictionW := fmepKPa * 1000 * vd * m.rpm / 120
	indicatedW := brakeW + frictionW

	// IMEP through indicated power, normalized like BMEP. Wherever η_mech is
	// defined this equals BMEP/η_mech exactly.
	var imepPa float64
	if omega > 0 && vd > 0 {
		imepPa = 2 * math.Pi * (indicatedW / omega) / vd
	}

	var etaMech float64
	if indicatedW > 0 {
		etaMech = brakeW / indicatedW
	}
	var etaThBrake float64
	if fuelFlow > 0 && m.fuel.LHV > 0 {
		etaThBrake = brakeW / (fuelFlow * m.fuel.LHV)
	}
	var etaOtto float64
	if m.cfg.CompressionRatio > 1 {
		etaOtto = 1 - math.Pow(m.cfg.CompressionRatio, 1-m.cal.Gamma)
	}

	return PerformanceResult{
		DisplacementL:             vd * 1000,
		AirMassFlow:               airFlow,
		FuelMassFlow:              fuelFlow,
		FuelFlowLHr:               fuelLHr,
		BrakePowerKW:              brakeW / 1000,
		IndicatedPowerKW:          indicatedW / 1000,
		TorqueNm:                  torqueNm,
		BMEPkPa:                   bmepPa / 1000,
		IMEPkPa:                   imepPa / 1000,
		FMEPkPa:                   fmepKPa,
		BSFCgkWh:                  bsfcKgJ / gPerKWhToKgPerJ,
		MechanicalEfficiencyPct:   etaMech * 100,
		BrakeThermalEfficiencyPct: etaThBrake * 100,
		OttoEfficiencyPct:         etaOtto * 100,
		VolumetricEfficiencyPct:   veFrac * 100,
	}
}
