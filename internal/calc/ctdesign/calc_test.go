package ctdesign

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceInput() Input {
	return Input{
		Topology:          Crossed,
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

// Reference chain for the 200-1100nm / 300 l/mm / 40 deg design, evaluated
// independently; every value must match to 1e-6 relative.
func TestCalculateReferenceDesign(t *testing.T) {
	res, err := Calculate(referenceInput())
	require.NoError(t, err)

	assert.Equal(t, 650.0, res.LambdaCNm)
	assert.InEpsilon(t, 0.453010258980, res.AlphaRad, 1e-6)
	assert.InEpsilon(t, 0.245121441818, res.BetaRad, 1e-6)
	assert.InEpsilon(t, 25.955575915673, res.AlphaDeg, 1e-6)
	assert.InEpsilon(t, 14.044424084327, res.BetaDeg, 1e-6)
	assert.InEpsilon(t, 102.040975044424, res.LOutMM, 1e-6)
	assert.InEpsilon(t, 82.239600981089, res.LInMM, 1e-6)
	assert.InEpsilon(t, 0.233899641251, res.Theta2Rad, 1e-6)
	assert.InEpsilon(t, 167.557709011782, res.R1MM, 1e-6)
	assert.InEpsilon(t, 209.794666549575, res.R2MM, 1e-6)
	assert.InEpsilon(t, 70.818220609033, res.D1MM, 1e-6)
	assert.InEpsilon(t, 88.669659342630, res.D2MM, 1e-6)
	assert.Empty(t, res.Notes)
}

func TestCenterWavelengthIsArithmeticMean(t *testing.T) {
	in := referenceInput()
	in.Lambda1Nm = 350
	in.Lambda2Nm = 780
	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, (350.0+780.0)/2, res.LambdaCNm)
	assert.Greater(t, res.LambdaCNm, in.Lambda1Nm)
	assert.Less(t, res.LambdaCNm, in.Lambda2Nm)
}

// alpha and beta must satisfy k*lambda = d*(sin(alpha)-sin(beta)): both
// angles are measured on the same side of the grating normal, with beta
// stored as the positive magnitude D_v - alpha.
func TestGratingEquationHolds(t *testing.T) {
	for _, in := range []Input{
		referenceInput(),
		{Topology: NonCrossed, Lambda1Nm: 400, Lambda2Nm: 900, GratingLinesPerMM: 600,
			DiffractionOrder: 1, DvDeg: 32, SensorLengthMM: 14.2, Magnification: 1.0, Theta1Deg: 9},
		{Topology: Crossed, Lambda1Nm: 900, Lambda2Nm: 1700, GratingLinesPerMM: 150,
			DiffractionOrder: 1, DvDeg: 45, SensorLengthMM: 25.6, Magnification: 1.25, Theta1Deg: 12},
	} {
		res, err := Calculate(in)
		require.NoError(t, err)

		d := 1 / (in.GratingLinesPerMM * 1000)
		lhs := float64(in.DiffractionOrder) * res.LambdaCNm * 1e-9
		rhs := d * (math.Sin(res.AlphaRad) - math.Sin(res.BetaRad))
		assert.InEpsilon(t, lhs, rhs, 1e-6)
		assert.InDelta(t, res.DvRad, res.AlphaRad+res.BetaRad, 1e-12)
	}
}

func TestComaFreeOffsetFraction(t *testing.T) {
	res, err := Calculate(referenceInput())
	require.NoError(t, err)

	want := 1 - 1/math.Sqrt(3)
	assert.InDelta(t, want, res.D1MM/res.R1MM, 1e-12)
	assert.InDelta(t, want, res.D2MM/res.R2MM, 1e-12)
}

func TestExitDistanceLinearInSensorLength(t *testing.T) {
	in := referenceInput()
	base, err := Calculate(in)
	require.NoError(t, err)

	in.SensorLengthMM *= 2
	doubled, err := Calculate(in)
	require.NoError(t, err)
	assert.InEpsilon(t, 2*base.LOutMM, doubled.LOutMM, 1e-12)

	in.SensorLengthMM = referenceInput().SensorLengthMM * 3.5
	scaled, err := Calculate(in)
	require.NoError(t, err)
	assert.InEpsilon(t, 3.5*base.LOutMM, scaled.LOutMM, 1e-12)
}

func TestCalculateIsDeterministic(t *testing.T) {
	a, err := Calculate(referenceInput())
	require.NoError(t, err)
	b, err := Calculate(referenceInput())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTopologyDoesNotChangeMagnitudes(t *testing.T) {
	crossed, err := Calculate(referenceInput())
	require.NoError(t, err)

	in := referenceInput()
	in.Topology = NonCrossed
	nonCrossed, err := Calculate(in)
	require.NoError(t, err)

	nonCrossed.Topology = Crossed
	assert.Equal(t, crossed, nonCrossed)
}

func TestInvalidInputs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Input)
		want   error
	}{
		{"swapped band", func(in *Input) { in.Lambda1Nm, in.Lambda2Nm = in.Lambda2Nm, in.Lambda1Nm }, ErrWavelengthOrder},
		{"equal band edges", func(in *Input) { in.Lambda2Nm = in.Lambda1Nm }, ErrWavelengthOrder},
		{"zero density", func(in *Input) { in.GratingLinesPerMM = 0 }, ErrGratingDensity},
		{"zero order", func(in *Input) { in.DiffractionOrder = 0 }, ErrDiffractionOrder},
		{"zero sensor", func(in *Input) { in.SensorLengthMM = 0 }, ErrSensorLength},
		{"zero magnification", func(in *Input) { in.Magnification = 0 }, ErrMagnification},
		{"unknown topology", func(in *Input) { in.Topology = "folded" }, ErrTopology},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := referenceInput()
			tc.mutate(&in)
			_, err := Calculate(in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUnsatisfiableGrating(t *testing.T) {
	in := referenceInput()
	in.GratingLinesPerMM = 3600 // m = 1*650e-9*3600e3 = 2.34 > 2
	_, err := Calculate(in)
	require.Error(t, err)

	var ge *UnsatisfiableGratingError
	require.True(t, errors.As(err, &ge))
	assert.InEpsilon(t, 2.34, ge.Ratio, 1e-9)
	assert.Equal(t, 2.0, ge.Limit)
}

// A ratio under 2 can still overflow the asin once cos(D_v/2) shrinks it.
func TestAsinDomainGuard(t *testing.T) {
	in := referenceInput()
	in.GratingLinesPerMM = 2900 // m = 1.885, but m/(2*cos(20deg)) > 1
	_, err := Calculate(in)
	require.Error(t, err)

	var ge *UnsatisfiableGratingError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, 1.0, ge.Limit)
	assert.Greater(t, ge.Ratio, 1.0)
}

func TestNearGrazingAdvisory(t *testing.T) {
	ratio, nearGrazing, err := ValidateGratingEquation(650, 2800, 1)
	require.NoError(t, err)
	assert.True(t, nearGrazing)
	assert.InEpsilon(t, 1.82, ratio, 1e-9)

	ratio, nearGrazing, err = ValidateGratingEquation(650, 300, 1)
	require.NoError(t, err)
	assert.False(t, nearGrazing)
	assert.InEpsilon(t, 0.195, ratio, 1e-9)

	in := referenceInput()
	in.GratingLinesPerMM = 2800
	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Contains(t, res.Notes, "Near-grazing")
}
