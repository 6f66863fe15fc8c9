// Package constraints turns a computed Czerny-Turner layout into the bounded
// merit-function operands a raytracing optimizer consumes: one spectral-length
// target plus (min,max) bands around every nominal geometric quantity.
package constraints

import (
	"math"

	"Czerny/internal/calc/ctdesign"
)

// Options controls band construction. TruncateMargins reproduces the legacy
// behaviour of truncating every mm/degree band edge toward zero; the default
// keeps edges exact. Curvature bounds are never truncated.
type Options struct {
	TruncateMargins bool `json:"truncate_margins"`
}

type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Bounds struct {
	// Equality-style constraint: imaged spectral length on the detector.
	SensorTargetMM float64 `json:"sensor_target_mm"`
	SensorWeight   float64 `json:"sensor_weight"`

	DvDeg        Band `json:"d_v_deg"`
	LInMM        Band `json:"l_in_mm"`
	D1MM         Band `json:"d_1_mm"`
	D2MM         Band `json:"d_2_mm"`
	LOutMM       Band `json:"l_out_mm"`
	Theta1Deg    Band `json:"theta_1_deg"`
	Theta2Deg    Band `json:"theta_2_deg"`
	ImageTiltDeg Band `json:"image_tilt_deg"`
	AlphaDeg     Band `json:"alpha_deg"`
	BetaDeg      Band `json:"beta_deg"`

	// The optimizer constrains curvature (1/R), not radius. Mirrors carry
	// negative radii in the prescription, hence 1/(-R -/+ 5).
	CurvatureR1 Band `json:"curvature_r_1"`
	CurvatureR2 Band `json:"curvature_r_2"`
}

// Fixed margins around the nominal values, matching the merit file the
// optimizer expects.
const (
	lInMarginMM     = 5.0
	d1MarginMM      = 5.0
	d2MarginMM      = 2.5
	lOutMarginMM    = 10.0
	tiltMarginDeg   = 1.5
	imageTiltDeg    = 4.0
	radiusPerturbMM = 5.0
	sensorWeight    = 1.0
)

// Derive maps the nominal parameters onto tolerance bands. The grating-angle
// bands flip sign with topology: crossed designs tilt toward positive
// alpha/beta, non-crossed toward negative.
func Derive(in ctdesign.Input, p ctdesign.Result, opts Options) Bounds {
	edge := func(v float64) float64 {
		if opts.TruncateMargins {
			return math.Trunc(v)
		}
		return v
	}
	band := func(nominal, margin float64) Band {
		return Band{Min: edge(nominal - margin), Max: edge(nominal + margin)}
	}

	b := Bounds{
		SensorTargetMM: in.SensorLengthMM,
		SensorWeight:   sensorWeight,

		DvDeg:     band(in.DvDeg, in.DvDeg/10),
		LInMM:     band(p.LInMM, lInMarginMM),
		D2MM:      band(p.D2MM, d2MarginMM),
		Theta1Deg: band(in.Theta1Deg, tiltMarginDeg),
		Theta2Deg: band(p.Theta2Deg, tiltMarginDeg),

		// d_1 and L_out enter the lens table as negative thicknesses, so the
		// bands invert around the sign flip.
		D1MM:   Band{Min: -edge(p.D1MM + d1MarginMM), Max: -edge(p.D1MM - d1MarginMM)},
		LOutMM: Band{Min: -edge(p.LOutMM + lOutMarginMM), Max: -edge(p.LOutMM - lOutMarginMM)},

		ImageTiltDeg: Band{Min: -edge(imageTiltDeg + tiltMarginDeg), Max: -edge(imageTiltDeg - tiltMarginDeg)},

		CurvatureR1: Band{Min: 1 / (-p.R1MM + radiusPerturbMM), Max: 1 / (-p.R1MM - radiusPerturbMM)},
		CurvatureR2: Band{Min: 1 / (-p.R2MM + radiusPerturbMM), Max: 1 / (-p.R2MM - radiusPerturbMM)},
	}

	// 10% slack on the arm angle, same arithmetic as the D_v band.
	arm := edge(in.DvDeg + in.DvDeg/10)
	if in.Topology == ctdesign.Crossed {
		b.AlphaDeg = Band{Min: 0, Max: arm}
		b.BetaDeg = Band{Min: 0, Max: arm}
	} else {
		b.AlphaDeg = Band{Min: -arm, Max: 0}
		b.BetaDeg = Band{Min: -arm, Max: 0}
	}
	return b
}
