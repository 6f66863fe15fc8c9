package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Czerny/internal/calc/ctdesign"
)

func referenceInput(top ctdesign.Topology) ctdesign.Input {
	return ctdesign.Input{
		Topology:          top,
		Lambda1Nm:         200,
		Lambda2Nm:         1100,
		GratingLinesPerMM: 300,
		DiffractionOrder:  1,
		DvDeg:             40,
		SensorLengthMM:    28.4,
		Magnification:     1.15,
		Theta1Deg:         11,
	}
}

func TestDeriveExactBands(t *testing.T) {
	in := referenceInput(ctdesign.Crossed)
	res, err := ctdesign.Calculate(in)
	require.NoError(t, err)

	b := Derive(in, res, Options{})

	assert.Equal(t, 28.4, b.SensorTargetMM)
	assert.Equal(t, 1.0, b.SensorWeight)

	assert.Equal(t, Band{Min: 36, Max: 44}, b.DvDeg)
	assert.InDelta(t, res.LInMM-5, b.LInMM.Min, 1e-9)
	assert.InDelta(t, res.LInMM+5, b.LInMM.Max, 1e-9)
	assert.InDelta(t, -(res.D1MM + 5), b.D1MM.Min, 1e-9)
	assert.InDelta(t, -(res.D1MM - 5), b.D1MM.Max, 1e-9)
	assert.InDelta(t, res.D2MM-2.5, b.D2MM.Min, 1e-9)
	assert.InDelta(t, res.D2MM+2.5, b.D2MM.Max, 1e-9)
	assert.InDelta(t, -(res.LOutMM + 10), b.LOutMM.Min, 1e-9)
	assert.InDelta(t, -(res.LOutMM - 10), b.LOutMM.Max, 1e-9)
	assert.Equal(t, Band{Min: 9.5, Max: 12.5}, b.Theta1Deg)
	assert.InDelta(t, res.Theta2Deg-1.5, b.Theta2Deg.Min, 1e-9)
	assert.InDelta(t, res.Theta2Deg+1.5, b.Theta2Deg.Max, 1e-9)
	assert.Equal(t, Band{Min: -5.5, Max: -2.5}, b.ImageTiltDeg)

	assert.InDelta(t, 1/(-res.R1MM+5), b.CurvatureR1.Min, 1e-15)
	assert.InDelta(t, 1/(-res.R1MM-5), b.CurvatureR1.Max, 1e-15)
	assert.InDelta(t, 1/(-res.R2MM+5), b.CurvatureR2.Min, 1e-15)
	assert.InDelta(t, 1/(-res.R2MM-5), b.CurvatureR2.Max, 1e-15)

	for name, band := range map[string]Band{
		"d_v": b.DvDeg, "l_in": b.LInMM, "d_1": b.D1MM, "d_2": b.D2MM,
		"l_out": b.LOutMM, "theta_1": b.Theta1Deg, "theta_2": b.Theta2Deg,
		"image_tilt": b.ImageTiltDeg, "alpha": b.AlphaDeg, "beta": b.BetaDeg,
		"curvature_r_1": b.CurvatureR1, "curvature_r_2": b.CurvatureR2,
	} {
		assert.Less(t, band.Min, band.Max, name)
	}
}

// Legacy merit files truncate band edges toward zero.
func TestDeriveTruncatedBands(t *testing.T) {
	in := referenceInput(ctdesign.Crossed)
	res, err := ctdesign.Calculate(in)
	require.NoError(t, err)

	b := Derive(in, res, Options{TruncateMargins: true})

	assert.Equal(t, Band{Min: 36, Max: 44}, b.DvDeg)
	assert.Equal(t, Band{Min: 77, Max: 87}, b.LInMM)
	assert.Equal(t, Band{Min: -75, Max: -65}, b.D1MM)
	assert.Equal(t, Band{Min: 86, Max: 91}, b.D2MM)
	assert.Equal(t, Band{Min: -112, Max: -92}, b.LOutMM)
	assert.Equal(t, Band{Min: 9, Max: 12}, b.Theta1Deg)
	assert.Equal(t, Band{Min: 11, Max: 14}, b.Theta2Deg)
	assert.Equal(t, Band{Min: -5, Max: -2}, b.ImageTiltDeg)
	assert.Equal(t, Band{Min: 0, Max: 44}, b.AlphaDeg)
	assert.Equal(t, Band{Min: 0, Max: 44}, b.BetaDeg)

	// Curvature bounds stay exact regardless of the truncation option.
	assert.InDelta(t, 1/(-res.R1MM+5), b.CurvatureR1.Min, 1e-15)
	assert.InDelta(t, 1/(-res.R2MM-5), b.CurvatureR2.Max, 1e-15)
}

func TestTopologyFlipsArmAngleBands(t *testing.T) {
	crossedIn := referenceInput(ctdesign.Crossed)
	crossedRes, err := ctdesign.Calculate(crossedIn)
	require.NoError(t, err)
	crossed := Derive(crossedIn, crossedRes, Options{})

	nonCrossedIn := referenceInput(ctdesign.NonCrossed)
	nonCrossedRes, err := ctdesign.Calculate(nonCrossedIn)
	require.NoError(t, err)
	nonCrossed := Derive(nonCrossedIn, nonCrossedRes, Options{})

	assert.Equal(t, Band{Min: 0, Max: 44}, crossed.AlphaDeg)
	assert.Equal(t, Band{Min: -44, Max: 0}, nonCrossed.AlphaDeg)
	assert.Equal(t, crossed.AlphaDeg, crossed.BetaDeg)
	assert.Equal(t, nonCrossed.AlphaDeg, nonCrossed.BetaDeg)

	// Everything else is identical across topologies.
	assert.Equal(t, crossed.LInMM, nonCrossed.LInMM)
	assert.Equal(t, crossed.CurvatureR1, nonCrossed.CurvatureR1)
	assert.Equal(t, crossed.Theta2Deg, nonCrossed.Theta2Deg)
}
