package enginesim

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCalibration(t *testing.T) {
	cal := DefaultCalibration()
	if cal.VEFloor != 0.60 || cal.VEAmplitude != 0.40 || cal.VEPeakFrac != 0.6 {
		t.Fatalf("VE curve constants off: %+v", cal)
	}
	if cal.VESigmaLowRatio != 0.25 || cal.VESigmaHighRatio != 0.18 {
		t.Fatalf("VE sigma ratios off: %+v", cal)
	}
	if cal.FMEPConstant != 30 || cal.FMEPLinear != 1.5 || cal.FMEPQuadratic != 2e-4 {
		t.Fatalf("friction coefficients off: %+v", cal)
	}
	if cal.Gamma != 1.35 {
		t.Fatalf("gamma off: %f", cal.Gamma)
	}
}

func TestLoadCalibrationNoConfig(t *testing.T) {
	if got := loadCalibration(""); got != DefaultCalibration() {
		t.Fatalf("no config dir should mean pure defaults: %+v", got)
	}
	// A directory with no config file is also fine.
	if got := loadCalibration(t.TempDir()); got != DefaultCalibration() {
		t.Fatalf("missing config file should mean pure defaults: %+v", got)
	}
}

func TestLoadCalibrationOverride(t *testing.T) {
	dir := t.TempDir()
	conf := `[thermo]
gamma = 1.4

[friction]
constant = 45.0

[maps]
path = "/tmp/custom.csv"
`
	if err := os.WriteFile(filepath.Join(dir, "enginesim.toml"), []byte(conf), 0644); err != nil {
		t.Fatal(err)
	}
	cal := loadCalibration(dir)
	if cal.Gamma != 1.4 {
		t.Fatalf("gamma override not applied: %f", cal.Gamma)
	}
	if cal.FMEPConstant != 45.0 {
		t.Fatalf("friction override not applied: %f", cal.FMEPConstant)
	}
	if cal.MapsPath != "/tmp/custom.csv" {
		t.Fatalf("maps path override not applied: %s", cal.MapsPath)
	}
	// Untouched keys keep their defaults.
	if cal.VEFloor != 0.60 || cal.FMEPLinear != 1.5 {
		t.Fatalf("defaults lost on partial override: %+v", cal)
	}
}
