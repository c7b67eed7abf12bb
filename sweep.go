package enginesim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
)

// SweepPoint pairs one RPM with its performance snapshot.
type SweepPoint struct {
	RPM float64 `json:"rpm"`
	PerformanceResult
}

// Sweep evaluates the configuration across an RPM range, one fresh model per
// point. Each point is stateless and independent, so the result is exactly
// what per-point construction would give.
func Sweep(cal Calibration, maps *CurveMap, cfg EngineConfig, fromRPM, toRPM, stepRPM float64) ([]SweepPoint, error) {
	if stepRPM <= 0 {
		return nil, fmt.Errorf("sweep step must be positive, got %f", stepRPM)
	}
	if toRPM < fromRPM {
		return nil, fmt.Errorf("sweep range inverted: %f to %f", fromRPM, toRPM)
	}
	points := make([]SweepPoint, 0, int((toRPM-fromRPM)/stepRPM)+1)
	for rpm := fromRPM; rpm <= toRPM+1e-9; rpm += stepRPM {
		m, err := NewPerformanceModelWith(cal, maps, cfg, rpm)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{RPM: rpm, PerformanceResult: m.Results()})
	}
	return points, nil
}

// SensitivityResult summarizes a geometry sensitivity study.
type SensitivityResult struct {
	Samples       int
	MeanPowerKW   float64
	MinPowerKW    float64
	MaxPowerKW    float64
	StdDevPowerKW float64
}

// SensitivityStudy perturbs bore, stroke and compression ratio with zero-mean
// Gaussian noise of the given standard deviations and reports the spread of
// brake power at the operating point. All sigmas must be positive for the
// covariance to be definite. The study is reproducible for a given seed.
func SensitivityStudy(cal Calibration, maps *CurveMap, cfg EngineConfig, rpm, σBoreMM, σStrokeMM, σCR float64, samples int, seed int64) (SensitivityResult, error) {
	var res SensitivityResult
	if samples <= 0 {
		return res, fmt.Errorf("need a positive sample count, got %d", samples)
	}
	cov := mat64.NewSymDense(3, []float64{
		σBoreMM * σBoreMM, 0, 0,
		0, σStrokeMM * σStrokeMM, 0,
		0, 0, σCR * σCR,
	})
	noise, ok := distmv.NewNormal([]float64{0, 0, 0}, cov, rand.New(rand.NewSource(seed)))
	if !ok {
		return res, fmt.Errorf("perturbation covariance is not positive definite")
	}
	var sum, sumSq float64
	min, max := math.Inf(1), math.Inf(-1)
	for i := 0; i < samples; i++ {
		p := noise.Rand(nil)
		c := cfg
		c.BoreMM += p[0]
		c.StrokeMM += p[1]
		c.CompressionRatio += p[2]
		m, err := NewPerformanceModelWith(cal, maps, c, rpm)
		if err != nil {
			return res, err
		}
		kw := m.Results().BrakePowerKW
		sum += kw
		sumSq += kw * kw
		min = math.Min(min, kw)
		max = math.Max(max, kw)
	}
	mean := sum / float64(samples)
	variance := sumSq/float64(samples) - mean*mean
	if variance < 0 {
		variance = 0 // round-off
	}
	res = SensitivityResult{
		Samples:       samples,
		MeanPowerKW:   mean,
		MinPowerKW:    min,
		MaxPowerKW:    max,
		StdDevPowerKW: math.Sqrt(variance),
	}
	return res, nil
}
