package main

import (
	"flag"
	"log"
	"os"

	enginesim "github.com/daglar510/engine-sim"
)

var (
	cylinders int
	boreMM    float64
	strokeMM  float64
	cr        float64
	rpm       float64
	redline   float64
	bsfc      float64
	afr       float64
	fuelName  string
	altitude  float64
	ambientC  float64
	boostKPa  float64
	throttle  float64

	sweep   bool
	fromRPM float64
	toRPM   float64
	stepRPM float64
	outPath string
	serveOn string
)

func init() {
	flag.IntVar(&cylinders, "cyl", 4, "number of cylinders")
	flag.Float64Var(&boreMM, "bore", 86, "bore in mm")
	flag.Float64Var(&strokeMM, "stroke", 86, "stroke in mm")
	flag.Float64Var(&cr, "cr", 10.5, "compression ratio")
	flag.Float64Var(&rpm, "rpm", 3000, "engine speed")
	flag.Float64Var(&redline, "redline", 6500, "redline RPM")
	flag.Float64Var(&bsfc, "bsfc", 300, "nominal BSFC in g/kWh at the torque peak")
	flag.Float64Var(&afr, "afr", 0, "air-fuel ratio (0 uses the fuel's stoichiometric value)")
	flag.StringVar(&fuelName, "fuel", "Gasoline", "fuel type: Gasoline, Diesel or E85")
	flag.Float64Var(&altitude, "altitude", 0, "altitude in meters (ISA density)")
	flag.Float64Var(&ambientC, "temp", 15, "ambient temperature in °C")
	flag.Float64Var(&boostKPa, "boost", 0, "gauge boost pressure in kPa")
	flag.Float64Var(&throttle, "throttle", 1.0, "throttle scaler, 0 to 1")

	flag.BoolVar(&sweep, "sweep", false, "sweep the RPM range instead of a single point")
	flag.Float64Var(&fromRPM, "from", 1000, "sweep start RPM")
	flag.Float64Var(&toRPM, "to", 0, "sweep end RPM (0 uses the redline)")
	flag.Float64Var(&stepRPM, "step", 250, "sweep step RPM")
	flag.StringVar(&outPath, "o", "", "sweep CSV output file (default stdout)")
	flag.StringVar(&serveOn, "serve", "", "serve the model over HTTP on this address, e.g. :8087")
}

func main() {
	flag.Parse()

	if afr == 0 {
		fuel, err := enginesim.FuelFromString(fuelName)
		if err != nil {
			log.Fatal(err)
		}
		afr = fuel.StoichAFR
	}
	cfg := enginesim.EngineConfig{
		Cylinders:             cylinders,
		BoreMM:                boreMM,
		StrokeMM:              strokeMM,
		CompressionRatio:      cr,
		RedlineRPM:            redline,
		NominalBSFC:           bsfc,
		AFR:                   afr,
		FuelType:              fuelName,
		AirDensity:            enginesim.ISADensity(altitude, ambientC),
		ManifoldPressureRatio: enginesim.ManifoldRatioFromBoost(boostKPa),
		ThrottleScaler:        throttle,
	}
	cal := enginesim.LoadCalibration()
	maps := enginesim.LoadCurveMap(cal.MapsPath)

	if serveOn != "" {
		serve(serveOn, cal, maps, cfg)
		return
	}

	if sweep {
		if toRPM == 0 {
			toRPM = redline
		}
		points, err := enginesim.Sweep(cal, maps, cfg, fromRPM, toRPM, stepRPM)
		if err != nil {
			log.Fatal(err)
		}
		if outPath == "" {
			if err := enginesim.ExportSweepCSV(os.Stdout, points); err != nil {
				log.Fatal(err)
			}
			return
		}
		if err := enginesim.ExportSweepFile(outPath, points); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %d points to %s", len(points), outPath)
		return
	}

	m, err := enginesim.NewPerformanceModelWith(cal, maps, cfg, rpm)
	if err != nil {
		log.Fatal(err)
	}
	renderDashboard(cfg, rpm, m.Results())
}
