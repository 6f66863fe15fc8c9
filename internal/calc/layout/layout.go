// Package layout expands a computed Czerny-Turner design into the ordered
// surface prescription an optical-design tool instantiates: collimating
// mirror, grating and focusing mirror, each framed by coordinate breaks.
// Topology decides the sign of the grating tilts and the diffraction order.
package layout

import (
	"Czerny/internal/calc/ctdesign"
)

type SurfaceType string

const (
	Standard        SurfaceType = "standard"
	CoordinateBreak SurfaceType = "coordinate_break"
	Grating         SurfaceType = "diffraction_grating"
)

type Surface struct {
	Index       int         `json:"index"`
	Type        SurfaceType `json:"type"`
	Comment     string      `json:"comment"`
	RadiusMM    float64     `json:"radius_mm,omitempty"`
	ThicknessMM float64     `json:"thickness_mm,omitempty"`
	TiltXDeg    float64     `json:"tilt_x_deg,omitempty"`
	Material    string      `json:"material,omitempty"`
	LinesPerUm  float64     `json:"lines_per_um,omitempty"`
	Order       int         `json:"order,omitempty"`
	// PickupFrom names the surface whose X tilt this one mirrors back
	// (the return leg of each off-axis mirror). Zero means no pickup.
	PickupFrom int  `json:"pickup_from,omitempty"`
	Stop       bool `json:"stop,omitempty"`
}

// SystemSettings carries the non-surface state of the design document.
type SystemSettings struct {
	ObjectSpaceNA     float64   `json:"object_space_na"`
	FieldXMM          []float64 `json:"field_x_mm"`
	WavelengthsUm     []float64 `json:"wavelengths_um"`
	PrimaryWavelength int       `json:"primary_wavelength"` // 1-based
}

type Prescription struct {
	Settings SystemSettings `json:"settings"`
	Surfaces []Surface      `json:"surfaces"`
}

const (
	objectSpaceNA    = 0.125
	fieldHalfWidthMM = 0.3
	imageTiltDeg     = -4.0
)

// Build lays out the twelve-surface sequence. Mirror radii enter negative
// (concave toward the beam); d_1 and L_out enter as negative thicknesses
// because those legs run against the local axis after reflection.
func Build(in ctdesign.Input, p ctdesign.Result) Prescription {
	sign := 1.0
	order := in.DiffractionOrder
	if in.Topology == ctdesign.NonCrossed {
		sign = -1.0
		order = -order
	}

	return Prescription{
		Settings: SystemSettings{
			ObjectSpaceNA:     objectSpaceNA,
			FieldXMM:          []float64{-fieldHalfWidthMM, 0, fieldHalfWidthMM},
			WavelengthsUm:     []float64{in.Lambda1Nm / 1000, p.LambdaCNm / 1000, in.Lambda2Nm / 1000},
			PrimaryWavelength: 2,
		},
		Surfaces: []Surface{
			{Index: 0, Type: Standard, Comment: "object / entrance slit", ThicknessMM: p.LInMM},
			{Index: 1, Type: CoordinateBreak, Comment: "collimator tilt", TiltXDeg: in.Theta1Deg},
			{Index: 2, Type: Standard, Comment: "collimating mirror", RadiusMM: -p.R1MM, Material: "MIRROR"},
			{Index: 3, Type: CoordinateBreak, Comment: "collimator return", ThicknessMM: -p.D1MM, TiltXDeg: in.Theta1Deg, PickupFrom: 1},
			{Index: 4, Type: CoordinateBreak, Comment: "grating incidence tilt", TiltXDeg: sign * p.AlphaDeg},
			{Index: 5, Type: Grating, Comment: "diffraction grating", Material: "MIRROR",
				LinesPerUm: in.GratingLinesPerMM / 1000, Order: order, Stop: true},
			{Index: 6, Type: CoordinateBreak, Comment: "diffraction tilt", ThicknessMM: p.D2MM, TiltXDeg: sign * p.BetaDeg},
			{Index: 7, Type: CoordinateBreak, Comment: "focuser tilt", TiltXDeg: p.Theta2Deg},
			{Index: 8, Type: Standard, Comment: "focusing mirror", RadiusMM: -p.R2MM, Material: "MIRROR"},
			{Index: 9, Type: CoordinateBreak, Comment: "focuser return", ThicknessMM: -p.LOutMM, TiltXDeg: p.Theta2Deg, PickupFrom: 7},
			{Index: 10, Type: CoordinateBreak, Comment: "image plane tilt", TiltXDeg: imageTiltDeg},
			{Index: 11, Type: Standard, Comment: "image / detector"},
		},
	}
}
