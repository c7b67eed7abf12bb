package enginesim

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gonum/floats"
)

func TestExportSweepCSV(t *testing.T) {
	points, err := Sweep(DefaultCalibration(), nil, testConfig(), 1000, 3000, 1000)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := ExportSweepCSV(&buf, points); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(points)+1 {
		t.Fatalf("expected header plus %d rows, got %d records", len(points), len(records))
	}
	if records[0][0] != "RPM" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	for i, p := range points {
		rpm, err := strconv.ParseFloat(records[i+1][0], 64)
		if err != nil {
			t.Fatal(err)
		}
		if !floats.EqualWithinAbs(rpm, p.RPM, 1e-6) {
			t.Fatalf("row %d RPM mismatch: %f vs %f", i, rpm, p.RPM)
		}
		torque, err := strconv.ParseFloat(records[i+1][1], 64)
		if err != nil {
			t.Fatal(err)
		}
		if !floats.EqualWithinAbs(torque, p.TorqueNm, 1e-5) {
			t.Fatalf("row %d torque mismatch: %f vs %f", i, torque, p.TorqueNm)
		}
	}
}

func TestExportSweepFile(t *testing.T) {
	points, err := Sweep(DefaultCalibration(), nil, testConfig(), 1000, 2000, 500)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sweep.csv")
	if err := ExportSweepFile(path, points); err != nil {
		t.Fatal(err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) == 0 {
		t.Fatal("empty sweep file")
	}
}
