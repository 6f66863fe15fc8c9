package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Czerny/internal/calc/ctdesign"
)

func TestParseDesignRow(t *testing.T) {
	row := []string{"crossed", "200", "1100", "300", "1", "40", "28.4", "1.15", "11"}
	in, err := parseDesignRow(row)
	require.NoError(t, err)

	assert.Equal(t, ctdesign.Input{
		Topology:          ctdesign.Crossed,
		Lambda1Nm:         200,
		Lambda2Nm:         1100,
		GratingLinesPerMM: 300,
		DiffractionOrder:  1,
		DvDeg:             40,
		SensorLengthMM:    28.4,
		Magnification:     1.15,
		Theta1Deg:         11,
	}, in)
}

func TestParseDesignRowDefaults(t *testing.T) {
	// Empty order column defaults to first order; theta_1 column absent.
	row := []string{"non_crossed", "1000", "1600", "150", "", "40", "28.4", "1.0"}
	in, err := parseDesignRow(row)
	require.NoError(t, err)

	assert.Equal(t, ctdesign.NonCrossed, in.Topology)
	assert.Equal(t, 1, in.DiffractionOrder)
	assert.Zero(t, in.Theta1Deg)
}

func TestParseDesignRowRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		row  []string
	}{
		{"short row", []string{"crossed", "200", "1100"}},
		{"empty wavelength", []string{"crossed", "", "1100", "300", "1", "40", "28.4", "1.15"}},
		{"unit suffix", []string{"crossed", "200nm", "1100", "300", "1", "40", "28.4", "1.15"}},
		{"trailing garbage", []string{"crossed", "200", "1100", "300", "1", "40", "28.4abc", "1.15"}},
		{"garbage order", []string{"crossed", "200", "1100", "300", "first", "40", "28.4", "1.15"}},
		{"garbage theta", []string{"crossed", "200", "1100", "300", "1", "40", "28.4", "1.15", "11deg"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseDesignRow(tc.row)
			assert.Error(t, err)
		})
	}
}

func TestParseDesignRowTrimsWhitespace(t *testing.T) {
	row := []string{"crossed", " 200 ", "1100", "300", "1", "40", "28.4", "1.15"}
	in, err := parseDesignRow(row)
	require.NoError(t, err)
	assert.Equal(t, 200.0, in.Lambda1Nm)
}
