// Package chart renders the linear-dispersion curve of a computed design as
// a self-contained HTML chart: image position on the detector against
// wavelength, with the sensor edges marked.
package chart

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"Czerny/internal/calc/ctdesign"
)

const defaultSamples = 200

// Dispersion builds the chart for one computed design. Position follows the
// grating's angular dispersion: x(lambda) = L_out*k*f*(lambda-lambda_c)*1e-6
// / cos(beta), in millimeters from the detector center.
func Dispersion(in ctdesign.Input, p ctdesign.Result, samples int) *charts.Line {
	if samples <= 1 {
		samples = defaultSamples
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "600px",
			PageTitle:       "Czerny-Turner linear dispersion",
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient: "horizontal",
			Show:   opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: opts.Bool(true),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Wavelength, nm",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "Position on detector, mm",
			Type:  "value",
			Show:  opts.Bool(true),
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	k := float64(in.DiffractionOrder)
	f := in.GratingLinesPerMM
	cosBeta := math.Cos(p.BetaRad)

	x := make([]string, samples)
	positions := make([]opts.LineData, samples)
	edges := make([]opts.LineData, samples)
	step := (in.Lambda2Nm - in.Lambda1Nm) / float64(samples-1)
	half := in.SensorLengthMM / 2
	for i := 0; i < samples; i++ {
		lambda := in.Lambda1Nm + float64(i)*step
		pos := p.LOutMM * k * f * (lambda - p.LambdaCNm) * 1e-6 / cosBeta
		x[i] = fmt.Sprintf("%.1f", lambda)
		positions[i] = opts.LineData{Value: pos}
		edge := half
		if pos < 0 {
			edge = -half
		}
		edges[i] = opts.LineData{Value: edge}
	}

	line.SetXAxis(x)
	line.AddSeries("image position", positions)
	line.AddSeries("sensor edge", edges)
	return line
}
