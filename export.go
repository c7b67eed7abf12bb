package enginesim

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

var sweepCSVHeader = []string{
	"RPM", "TorqueNm", "BrakePowerKW", "IndicatedPowerKW",
	"BMEPkPa", "IMEPkPa", "FMEPkPa", "VE", "BSFC_g_kWh",
	"AirMassFlowKgS", "FuelMassFlowKgS", "FuelFlowLHr",
}

// ExportSweepCSV writes a sweep as CSV, one row per RPM point. The VE and
// BSFC_g_kWh columns are named so the file can be hand-tuned and fed back in
// as a curve map.
func ExportSweepCSV(w io.Writer, points []SweepPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sweepCSVHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			f2s(p.RPM), f2s(p.TorqueNm), f2s(p.BrakePowerKW), f2s(p.IndicatedPowerKW),
			f2s(p.BMEPkPa), f2s(p.IMEPkPa), f2s(p.FMEPkPa),
			f2s(p.VolumetricEfficiencyPct), f2s(p.BSFCgkWh),
			f2s(p.AirMassFlow), f2s(p.FuelMassFlow), f2s(p.FuelFlowLHr),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSweepFile writes a sweep CSV to the named file, creating or
// truncating it.
func ExportSweepFile(path string, points []SweepPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportSweepCSV(f, points); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func f2s(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
