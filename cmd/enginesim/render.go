package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	enginesim "github.com/daglar510/engine-sim"
)

// renderDashboard prints one operating point as a boxed metric table with
// gauge bars for the headline numbers.
func renderDashboard(cfg enginesim.EngineConfig, rpm float64, res enginesim.PerformanceResult) {
	title := fmt.Sprintf("%d cyl | %.1fx%.1f mm | CR %.1f | %s | %.0f RPM",
		cfg.Cylinders, cfg.BoreMM, cfg.StrokeMM, cfg.CompressionRatio, cfg.FuelType, rpm)

	pterm.Info.Printfln("Displacement: %.2f L", res.DisplacementL)
	pterm.DefaultBox.WithTitle(title).WithTitleTopLeft().Println(buildMetricTable(res))

	bhp := res.BrakePowerKW * 1000 / enginesim.WattsPerHP
	fmt.Println(gaugeBar("Brake Power", bhp, 1.5*bhp+1, "hp", pterm.FgLightRed))
	fmt.Println(gaugeBar("Torque", res.TorqueNm, 1.5*res.TorqueNm+1, "Nm", pterm.FgLightBlue))
	fmt.Println(gaugeBar("Volumetric Eff.", res.VolumetricEfficiencyPct, 100, "%", pterm.FgLightGreen))
	fmt.Println(gaugeBar("Mechanical Eff.", res.MechanicalEfficiencyPct, 100, "%", pterm.FgLightCyan))
}

func buildMetricTable(res enginesim.PerformanceResult) string {
	var b strings.Builder
	row := func(label string, value float64, unit string) {
		b.WriteString(fmt.Sprintf("%-26s %10.2f %s\n", label, value, unit))
	}
	row("Brake power", res.BrakePowerKW, "kW")
	row("Indicated power", res.IndicatedPowerKW, "kW")
	row("Torque", res.TorqueNm, "N·m")
	row("BMEP", res.BMEPkPa, "kPa")
	row("IMEP", res.IMEPkPa, "kPa")
	row("FMEP", res.FMEPkPa, "kPa")
	row("Air mass flow", res.AirMassFlow*1000, "g/s")
	row("Fuel mass flow", res.FuelMassFlow*1000, "g/s")
	row("Fuel flow", res.FuelFlowLHr, "L/hr")
	row("BSFC", res.BSFCgkWh, "g/kWh")
	row("Volumetric efficiency", res.VolumetricEfficiencyPct, "%")
	row("Mechanical efficiency", res.MechanicalEfficiencyPct, "%")
	row("Brake thermal efficiency", res.BrakeThermalEfficiencyPct, "%")
	row("Otto ideal efficiency", res.OttoEfficiencyPct, "%")
	return strings.TrimRight(b.String(), "\n")
}

// gaugeBar renders a filled bar scaled to maxValue, in the reference
// dashboard's gauge style.
func gaugeBar(label string, value, maxValue float64, unit string, color pterm.Color) string {
	const width = 40
	frac := 0.0
	if maxValue > 0 {
		frac = value / maxValue
		if frac > 1 {
			frac = 1
		}
		if frac < 0 {
			frac = 0
		}
	}
	filled := int(frac * width)
	bar := color.Sprint(strings.Repeat("█", filled)) + pterm.FgGray.Sprint(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%-18s |%s| %.1f %s", label, bar, value, unit)
}
