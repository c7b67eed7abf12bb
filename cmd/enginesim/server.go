package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	enginesim "github.com/daglar510/engine-sim"
)

var (
	brakePowerGauge   = prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_brake_power_kw"})
	torqueGauge       = prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_torque_nm"})
	bmepGauge         = prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_bmep_kpa"})
	fuelFlowGauge     = prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_fuel_flow_l_hr"})
	airMassFlowGauge  = prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_air_mass_flow_kg_s"})
	volumetricGauge   = prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_volumetric_efficiency_percent"})
	brakeThermalGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_brake_thermal_efficiency_percent"})
	rpmGauge          = prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_rpm"})
)

func init() {
	prometheus.MustRegister(brakePowerGauge, torqueGauge, bmepGauge, fuelFlowGauge,
		airMassFlowGauge, volumetricGauge, brakeThermalGauge, rpmGauge)
}

// serve exposes the model as JSON data feeds for an external dashboard, plus
// prometheus gauges for the last evaluated point. Handlers build a fresh model
// per request; there is no shared mutable state beyond the gauges.
func serve(addr string, cal enginesim.Calibration, maps *enginesim.CurveMap, cfg enginesim.EngineConfig) {
	router := mux.NewRouter()
	router.HandleFunc("/performance", performanceHandler(cal, maps, cfg)).Methods("GET")
	router.HandleFunc("/sweep", sweepHandler(cal, maps, cfg)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler())

	log.Printf("engine data server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}

func performanceHandler(cal enginesim.Calibration, maps *enginesim.CurveMap, cfg enginesim.EngineConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pointRPM, err := queryFloat(r, "rpm", rpm)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m, err := enginesim.NewPerformanceModelWith(cal, maps, cfg, pointRPM)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res := m.Results()
		publish(pointRPM, res)
		writeJSON(w, enginesim.SweepPoint{RPM: pointRPM, PerformanceResult: res})
	}
}

func sweepHandler(cal enginesim.Calibration, maps *enginesim.CurveMap, cfg enginesim.EngineConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := queryFloat(r, "from", 1000)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		to, err := queryFloat(r, "to", cfg.RedlineRPM)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		step, err := queryFloat(r, "step", 250)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		points, err := enginesim.Sweep(cal, maps, cfg, from, to, step)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, points)
	}
}

func publish(pointRPM float64, res enginesim.PerformanceResult) {
	rpmGauge.Set(pointRPM)
	brakePowerGauge.Set(res.BrakePowerKW)
	torqueGauge.Set(res.TorqueNm)
	bmepGauge.Set(res.BMEPkPa)
	fuelFlowGauge.Set(res.FuelFlowLHr)
	airMassFlowGauge.Set(res.AirMassFlow)
	volumetricGauge.Set(res.VolumetricEfficiencyPct)
	brakeThermalGauge.Set(res.BrakeThermalEfficiencyPct)
}

func queryFloat(r *http.Request, key string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
