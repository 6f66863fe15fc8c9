package ctdesign

import (
	"errors"
	"fmt"
	"math"
)

// Topology selects the grating/mirror arrangement. It does not change the
// computed magnitudes; it flips signs downstream (layout tilts, grating
// order, constraint bounds).
type Topology string

const (
	Crossed    Topology = "crossed"
	NonCrossed Topology = "non_crossed"
)

var (
	ErrTopology         = errors.New("topology must be \"crossed\" or \"non_crossed\"")
	ErrWavelengthOrder  = errors.New("lambda_1_nm must be less than lambda_2_nm")
	ErrGratingDensity   = errors.New("grating_lines_per_mm must be positive")
	ErrDiffractionOrder = errors.New("diffraction_order must be at least 1")
	ErrSensorLength     = errors.New("sensor_length_mm must be positive")
	ErrMagnification    = errors.New("magnification must be positive")
)

// UnsatisfiableGratingError reports a grating equation that has no solution
// for the requested density, order and band. Ratio is the offending value,
// Limit the bound it exceeded.
type UnsatisfiableGratingError struct {
	Ratio float64
	Limit float64
}

func (e *UnsatisfiableGratingError) Error() string {
	return fmt.Sprintf(
		"grating equation unsatisfiable: required ratio %.6g exceeds %.6g (reduce groove density, order, or spectral band)",
		e.Ratio, e.Limit)
}

const (
	// k*lambda_c/d above this has no diffraction solution at all.
	gratingRatioMax = 2.0
	// Above this the geometry is near grazing and efficiency collapses.
	gratingRatioGrazing = 1.8
)

type Input struct {
	Topology          Topology `json:"topology"`
	Lambda1Nm         float64  `json:"lambda_1_nm"`
	Lambda2Nm         float64  `json:"lambda_2_nm"`
	GratingLinesPerMM float64  `json:"grating_lines_per_mm"`
	DiffractionOrder  int      `json:"diffraction_order"`
	DvDeg             float64  `json:"d_v_deg"`
	SensorLengthMM    float64  `json:"sensor_length_mm"`
	Magnification     float64  `json:"magnification"`
	Theta1Deg         float64  `json:"theta_1_deg"`
}

type Result struct {
	Topology  Topology `json:"topology"`
	LambdaCNm float64  `json:"lambda_c_nm"`
	DvRad     float64  `json:"d_v_rad"`
	Theta1Rad float64  `json:"theta_1_rad"`
	AlphaRad  float64  `json:"alpha_rad"`
	BetaRad   float64  `json:"beta_rad"`
	AlphaDeg  float64  `json:"alpha_deg"`
	BetaDeg   float64  `json:"beta_deg"`
	LOutMM    float64  `json:"l_out_mm"`
	LInMM     float64  `json:"l_in_mm"`
	Theta2Rad float64  `json:"theta_2_rad"`
	Theta2Deg float64  `json:"theta_2_deg"`
	R1MM      float64  `json:"r_1_mm"`
	R2MM      float64  `json:"r_2_mm"`
	D1MM      float64  `json:"d_1_mm"`
	D2MM      float64  `json:"d_2_mm"`
	Notes     string   `json:"notes,omitempty"`
}

// comaFreeFraction places each mirror's coordinate-break offset on its axis:
// d = R*(1 - 1/sqrt(3)). The value is exact, not a fitted approximation.
var comaFreeFraction = 1 - 1/math.Sqrt(3)

func DegToRad(deg float64) float64 { return deg * (math.Pi / 180) }
func RadToDeg(rad float64) float64 { return rad * (180 / math.Pi) }

// ValidateGratingEquation checks k*lambda_c/d against the physical limit
// before any asin is attempted. Returns the ratio, whether the design sits in
// the near-grazing low-efficiency regime, and an error when the equation has
// no solution.
func ValidateGratingEquation(lambdaCNm, linesPerMM float64, order int) (ratio float64, nearGrazing bool, err error) {
	d := 1 / (linesPerMM * 1000) // groove spacing, meters
	ratio = float64(order) * lambdaCNm * 1e-9 / d
	if ratio > gratingRatioMax {
		return ratio, false, &UnsatisfiableGratingError{Ratio: ratio, Limit: gratingRatioMax}
	}
	return ratio, ratio > gratingRatioGrazing, nil
}

func validate(in Input) error {
	if in.Topology != Crossed && in.Topology != NonCrossed {
		return ErrTopology
	}
	if in.Lambda1Nm >= in.Lambda2Nm {
		return fmt.Errorf("%w (got lambda_1=%g, lambda_2=%g)", ErrWavelengthOrder, in.Lambda1Nm, in.Lambda2Nm)
	}
	if in.GratingLinesPerMM <= 0 {
		return fmt.Errorf("%w (got %g)", ErrGratingDensity, in.GratingLinesPerMM)
	}
	if in.DiffractionOrder < 1 {
		return fmt.Errorf("%w (got %d)", ErrDiffractionOrder, in.DiffractionOrder)
	}
	if in.SensorLengthMM <= 0 {
		return fmt.Errorf("%w (got %g)", ErrSensorLength, in.SensorLengthMM)
	}
	if in.Magnification <= 0 {
		return fmt.Errorf("%w (got %g)", ErrMagnification, in.Magnification)
	}
	return nil
}

// Calculate evaluates the Czerny-Turner layout chain. All angles are radians
// internally; degree copies are provided for the boundary. The sign
// convention is beta = D_v - alpha throughout (incidence and diffraction arms
// separated by the fixed angle D_v at the grating); with both angles on the
// same side of the normal the grating equation reads
// k*lambda = d*(sin(alpha) - sin(beta)).
//
// The chain, in dependency order: center wavelength, grating incidence angle
// alpha from the closed-form grating equation, diffraction angle beta, exit
// arm L_out from the sensor length via angular dispersion, entrance arm L_in
// scaled by the magnification, focusing tilt theta_2 from the off-axis
// imaging condition, mirror radii R = 2L/cos(theta), and the coma-free
// offsets d = R*(1 - 1/sqrt(3)).
func Calculate(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	lambdaC := (in.Lambda1Nm + in.Lambda2Nm) / 2
	f := in.GratingLinesPerMM
	k := float64(in.DiffractionOrder)
	dvRad := DegToRad(in.DvDeg)
	theta1Rad := DegToRad(in.Theta1Deg)

	_, nearGrazing, err := ValidateGratingEquation(lambdaC, f, in.DiffractionOrder)
	if err != nil {
		return Result{}, err
	}

	// Closed-form solution of k*lambda = d*(sin(alpha)-sin(beta)) under
	// beta = D_v - alpha, via 2*cos(D_v/2)*sin(alpha-D_v/2) = k*lambda/d.
	sinArg := 1e-6 * k * f * lambdaC / (2 * math.Cos(dvRad/2))
	if math.Abs(sinArg) > 1 {
		return Result{}, &UnsatisfiableGratingError{Ratio: math.Abs(sinArg), Limit: 1}
	}
	alphaRad := math.Asin(sinArg) + dvRad/2
	betaRad := dvRad - alphaRad

	lOut := in.SensorLengthMM * math.Cos(betaRad) * 1e6 / (k * f * (in.Lambda2Nm - in.Lambda1Nm))
	lIn := lOut * math.Cos(alphaRad) / (math.Cos(betaRad) * in.Magnification)
	theta2Rad := math.Atan(in.Magnification * in.Magnification * math.Tan(theta1Rad) * math.Cos(alphaRad) / math.Cos(betaRad))
	r1 := 2 * lIn / math.Cos(theta1Rad)
	r2 := 2 * lOut / math.Cos(theta2Rad)

	res := Result{
		Topology:  in.Topology,
		LambdaCNm: lambdaC,
		DvRad:     dvRad,
		Theta1Rad: theta1Rad,
		AlphaRad:  alphaRad,
		BetaRad:   betaRad,
		AlphaDeg:  RadToDeg(alphaRad),
		BetaDeg:   RadToDeg(betaRad),
		LOutMM:    lOut,
		LInMM:     lIn,
		Theta2Rad: theta2Rad,
		Theta2Deg: RadToDeg(theta2Rad),
		R1MM:      r1,
		R2MM:      r2,
		D1MM:      r1 * comaFreeFraction,
		D2MM:      r2 * comaFreeFraction,
	}
	if nearGrazing {
		res.Notes = "Near-grazing grating geometry: k*lambda_c/d is within 10% of the physical limit; expect low diffraction efficiency."
	}
	return res, nil
}
