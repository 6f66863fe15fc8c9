package autodesign

import (
	"fmt"
	"math"

	"Czerny/internal/calc/ctdesign"
)

// Standard catalogue groove densities, lines/mm.
var catalogueLinesPerMM = []float64{2400, 1800, 1200, 900, 600, 300, 150, 75}

type GratingAutoInput struct {
	Topology       ctdesign.Topology `json:"topology"`
	Lambda1Nm      float64           `json:"lambda_1_nm"`
	Lambda2Nm      float64           `json:"lambda_2_nm"`
	DvDeg          float64           `json:"d_v_deg"`
	SensorLengthMM float64           `json:"sensor_length_mm"`
	Magnification  float64           `json:"magnification"`
	Theta1Deg      float64           `json:"theta_1_deg"`
}

type GratingAutoResult struct {
	GratingLinesPerMM float64         `json:"grating_lines_per_mm"`
	GratingRatio      float64         `json:"grating_ratio"`
	Computed          ctdesign.Result `json:"computed"`
	Notes             string          `json:"notes"`
}

// Gratings steeper than this at the center wavelength are rejected; past
// 45 degrees incidence the layout folds onto itself and efficiency drops.
const maxIncidenceDeg = 45.0

// Grating picks the densest catalogue grating whose first-order incidence
// angle at the center wavelength stays below maxIncidenceDeg, then runs the
// full layout chain with it. Denser gratings disperse more, so the search
// walks the catalogue downward.
func Grating(in GratingAutoInput) (GratingAutoResult, error) {
	if in.Lambda1Nm >= in.Lambda2Nm || in.SensorLengthMM <= 0 {
		return GratingAutoResult{}, fmt.Errorf("invalid input")
	}
	lambdaC := (in.Lambda1Nm + in.Lambda2Nm) / 2
	halfDvRad := ctdesign.DegToRad(in.DvDeg) / 2
	maxSinArg := math.Sin(ctdesign.DegToRad(maxIncidenceDeg) - halfDvRad)

	for _, f := range catalogueLinesPerMM {
		ratio, nearGrazing, err := ctdesign.ValidateGratingEquation(lambdaC, f, 1)
		if err != nil || nearGrazing {
			continue
		}
		if ratio/(2*math.Cos(halfDvRad)) > maxSinArg {
			continue
		}
		res, err := ctdesign.Calculate(ctdesign.Input{
			Topology:          in.Topology,
			Lambda1Nm:         in.Lambda1Nm,
			Lambda2Nm:         in.Lambda2Nm,
			GratingLinesPerMM: f,
			DiffractionOrder:  1,
			DvDeg:             in.DvDeg,
			SensorLengthMM:    in.SensorLengthMM,
			Magnification:     in.Magnification,
			Theta1Deg:         in.Theta1Deg,
		})
		if err != nil {
			continue
		}
		return GratingAutoResult{
			GratingLinesPerMM: f,
			GratingRatio:      ratio,
			Computed:          res,
			Notes:             "Densest catalogue grating keeping first-order incidence below 45 degrees.",
		}, nil
	}
	return GratingAutoResult{}, fmt.Errorf("no catalogue grating satisfies the grating equation for this band")
}
