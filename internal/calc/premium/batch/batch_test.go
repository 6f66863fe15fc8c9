package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Czerny/internal/calc/ctdesign"
)

func TestCalculateDesigns(t *testing.T) {
	in := DesignBatchInput{Items: []ctdesign.Input{
		{Topology: ctdesign.Crossed, Lambda1Nm: 200, Lambda2Nm: 1100, GratingLinesPerMM: 300,
			DiffractionOrder: 1, DvDeg: 40, SensorLengthMM: 28.4, Magnification: 1.15, Theta1Deg: 11},
		{Topology: ctdesign.NonCrossed, Lambda1Nm: 1000, Lambda2Nm: 1600, GratingLinesPerMM: 300,
			DiffractionOrder: 1, DvDeg: 40, SensorLengthMM: 28.4, Magnification: 1.15, Theta1Deg: 11},
	}}
	out, err := CalculateDesigns(in)
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.Equal(t, 650.0, out.Results[0].LambdaCNm)
	assert.Equal(t, 1300.0, out.Results[1].LambdaCNm)
}

func TestCalculateDesignsEmpty(t *testing.T) {
	_, err := CalculateDesigns(DesignBatchInput{})
	assert.Error(t, err)
}

func TestCalculateDesignsReportsFailingItem(t *testing.T) {
	in := DesignBatchInput{Items: []ctdesign.Input{
		{Topology: ctdesign.Crossed, Lambda1Nm: 200, Lambda2Nm: 1100, GratingLinesPerMM: 300,
			DiffractionOrder: 1, DvDeg: 40, SensorLengthMM: 28.4, Magnification: 1.15, Theta1Deg: 11},
		{Topology: ctdesign.Crossed, Lambda1Nm: 1100, Lambda2Nm: 200, GratingLinesPerMM: 300,
			DiffractionOrder: 1, DvDeg: 40, SensorLengthMM: 28.4, Magnification: 1.15, Theta1Deg: 11},
	}}
	_, err := CalculateDesigns(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ctdesign.ErrWavelengthOrder)
	assert.Contains(t, err.Error(), "item 1")
}
