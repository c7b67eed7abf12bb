package enginesim

import (
	"testing"
)

func TestSweep(t *testing.T) {
	points, err := Sweep(DefaultCalibration(), nil, testConfig(), 1000, 6500, 500)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 12 {
		t.Fatalf("expected 12 points from 1000 to 6500 by 500, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].RPM <= points[i-1].RPM {
			t.Fatalf("sweep not ordered at index %d", i)
		}
	}
	// Each sweep point must equal a standalone evaluation at the same RPM.
	standalone := newTestModel(t, testConfig(), points[3].RPM).Results()
	if points[3].PerformanceResult != standalone {
		t.Fatalf("sweep point diverges from a per-point model:\n%+v\n%+v", points[3].PerformanceResult, standalone)
	}
}

func TestSweepArguments(t *testing.T) {
	if _, err := Sweep(DefaultCalibration(), nil, testConfig(), 1000, 6500, 0); err == nil {
		t.Fatal("zero step should be rejected")
	}
	if _, err := Sweep(DefaultCalibration(), nil, testConfig(), 1000, 6500, -100); err == nil {
		t.Fatal("negative step should be rejected")
	}
	if _, err := Sweep(DefaultCalibration(), nil, testConfig(), 5000, 1000, 500); err == nil {
		t.Fatal("inverted range should be rejected")
	}
	cfg := testConfig()
	cfg.FuelType = "Plutonium"
	if _, err := Sweep(DefaultCalibration(), nil, cfg, 1000, 6500, 500); err == nil {
		t.Fatal("unknown fuel should surface from the sweep")
	}
}

func TestSensitivityStudy(t *testing.T) {
	cal := DefaultCalibration()
	res, err := SensitivityStudy(cal, nil, testConfig(), 3000, 0.5, 0.5, 0.1, 200, 42)
	if err != nil {
		t.Fatal(err)
	}
	if res.Samples != 200 {
		t.Fatalf("sample count: %d", res.Samples)
	}
	if res.MinPowerKW > res.MeanPowerKW || res.MeanPowerKW > res.MaxPowerKW {
		t.Fatalf("mean outside [min, max]: %+v", res)
	}
	if res.StdDevPowerKW <= 0 {
		t.Fatalf("perturbed geometry should spread the power: %+v", res)
	}
	// Small perturbations stay near the nominal point.
	nominal := newTestModel(t, testConfig(), 3000).Results().BrakePowerKW
	if res.MeanPowerKW < 0.9*nominal || res.MeanPowerKW > 1.1*nominal {
		t.Fatalf("mean power %f drifted from nominal %f", res.MeanPowerKW, nominal)
	}
}

func TestSensitivityStudyReproducible(t *testing.T) {
	cal := DefaultCalibration()
	a, err := SensitivityStudy(cal, nil, testConfig(), 3000, 0.5, 0.5, 0.1, 50, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := SensitivityStudy(cal, nil, testConfig(), 3000, 0.5, 0.5, 0.1, 50, 7)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("same seed should reproduce the study:\n%+v\n%+v", a, b)
	}
}

func TestSensitivityStudyArguments(t *testing.T) {
	cal := DefaultCalibration()
	if _, err := SensitivityStudy(cal, nil, testConfig(), 3000, 0.5, 0.5, 0.1, 0, 1); err == nil {
		t.Fatal("zero samples should be rejected")
	}
	if _, err := SensitivityStudy(cal, nil, testConfig(), 3000, 0, 0.5, 0.1, 10, 1); err == nil {
		t.Fatal("a zero sigma makes the covariance singular and should be rejected")
	}
}
