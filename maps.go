package enginesim

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"

	kitlog "github.com/go-kit/kit/log"
)

// diag reports recoverable data-source problems. The model never fails over a
// bad map file, it falls back to its built-in curves, so this logfmt stream is
// the only place those problems surface.
var diag = kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr)), "lib", "enginesim")

// CurveMap holds tabulated VE and BSFC curves read from a map file. VE is in
// percent, BSFC in g/kWh, both over RPM.
type CurveMap struct {
	VE   *TableCurve
	BSFC *TableCurve
}

// LoadCurveMap reads a CSV map with RPM, VE and BSFC_g_kWh columns, in any
// column or row order. It returns nil on any problem: an absent or malformed
// map is not an error, the model simply keeps its built-in curves. Only
// malformed data is logged; a missing file is the common case and stays quiet.
func LoadCurveMap(path string) *CurveMap {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		diag.Log("map", path, "err", err)
		return nil
	}
	if len(records) < 2 {
		diag.Log("map", path, "err", "no data rows")
		return nil
	}
	col := make(map[string]int)
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	iRPM, okRPM := col["RPM"]
	iVE, okVE := col["VE"]
	iBSFC, okBSFC := col["BSFC_g_kWh"]
	if !okRPM || !okVE || !okBSFC {
		diag.Log("map", path, "err", "missing RPM, VE or BSFC_g_kWh column")
		return nil
	}
	type row struct {
		rpm, ve, bsfc float64
	}
	rows := make([]row, 0, len(records)-1)
	for _, rec := range records[1:] {
		var r row
		var errs [3]error
		r.rpm, errs[0] = strconv.ParseFloat(strings.TrimSpace(rec[iRPM]), 64)
		r.ve, errs[1] = strconv.ParseFloat(strings.TrimSpace(rec[iVE]), 64)
		r.bsfc, errs[2] = strconv.ParseFloat(strings.TrimSpace(rec[iBSFC]), 64)
		for _, err := range errs {
			if err != nil {
				diag.Log("map", path, "err", err)
				return nil
			}
		}
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].rpm < rows[j].rpm })
	rpms := make([]float64, len(rows))
	ves := make([]float64, len(rows))
	bsfcs := make([]float64, len(rows))
	for i, r := range rows {
		rpms[i] = r.rpm
		ves[i] = r.ve
		bsfcs[i] = r.bsfc
	}
	veCurve, err := NewTableCurve(rpms, ves)
	if err != nil {
		diag.Log("map", path, "err", err)
		return nil
	}
	bsfcCurve, err := NewTableCurve(rpms, bsfcs)
	if err != nil {
		diag.Log("map", path, "err", err)
		return nil
	}
	return &CurveMap{VE: veCurve, BSFC: bsfcCurve}
}
