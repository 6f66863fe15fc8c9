package autodesign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Czerny/internal/calc/ctdesign"
)

func TestGratingPicksDensestSafeCatalogueEntry(t *testing.T) {
	res, err := Grating(GratingAutoInput{
		Topology:       ctdesign.Crossed,
		Lambda1Nm:      200,
		Lambda2Nm:      1100,
		DvDeg:          40,
		SensorLengthMM: 28.4,
		Magnification:  1.15,
		Theta1Deg:      11,
	})
	require.NoError(t, err)

	// lambda_c = 650nm, D_v = 40: 2400 and 1800 l/mm put the incidence past
	// 45 degrees; 1200 lands at 44.5.
	assert.Equal(t, 1200.0, res.GratingLinesPerMM)
	assert.InEpsilon(t, 0.78, res.GratingRatio, 1e-9)
	assert.Less(t, res.Computed.AlphaDeg, 45.0)
	assert.NotZero(t, res.Computed.LOutMM)
}

func TestGratingNarrowNIRBand(t *testing.T) {
	res, err := Grating(GratingAutoInput{
		Topology:       ctdesign.NonCrossed,
		Lambda1Nm:      1000,
		Lambda2Nm:      1600,
		DvDeg:          40,
		SensorLengthMM: 28.4,
		Magnification:  1.15,
		Theta1Deg:      11,
	})
	require.NoError(t, err)
	// lambda_c = 1300nm: 1200 and 900 l/mm exceed 45 degrees incidence at
	// D_v = 40; 600 lands at 44.5.
	assert.Equal(t, 600.0, res.GratingLinesPerMM)
}

func TestGratingRejectsInvalidBand(t *testing.T) {
	_, err := Grating(GratingAutoInput{Lambda1Nm: 900, Lambda2Nm: 400, SensorLengthMM: 28.4})
	assert.Error(t, err)
}
