// Command ctdesign computes a crossed or non-crossed Czerny-Turner layout
// from the command line, without the web service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"Czerny/internal/calc/constraints"
	"Czerny/internal/calc/ctdesign"
	"Czerny/internal/calc/layout"
)

type output struct {
	Input        ctdesign.Input       `json:"input"`
	Computed     ctdesign.Result      `json:"computed"`
	Bounds       *constraints.Bounds  `json:"bounds,omitempty"`
	Prescription *layout.Prescription `json:"prescription,omitempty"`
}

func main() {
	topology := flag.String("topology", "crossed", "spectrometer topology: crossed or non_crossed")
	lambda1 := flag.Float64("lambda1", 200, "short edge of the working band, nm")
	lambda2 := flag.Float64("lambda2", 1100, "long edge of the working band, nm")
	lines := flag.Float64("lines", 300, "grating groove density, lines/mm")
	order := flag.Int("order", 1, "diffraction order")
	dv := flag.Float64("dv", 40, "angle between incident and diffracted arms, degrees")
	sensor := flag.Float64("sensor", 28.4, "sensor length, mm")
	mag := flag.Float64("mag", 1.15, "spectrometer magnification")
	theta1 := flag.Float64("theta1", 11, "collimating mirror tilt, degrees")
	format := flag.String("format", "text", "output format: text or json")
	withLayout := flag.Bool("layout", false, "include the surface-by-surface prescription")
	withBounds := flag.Bool("constraints", false, "include optimizer bounds")
	truncate := flag.Bool("truncate", false, "truncate optimizer bound margins to whole numbers")
	outPath := flag.String("out", "", "write output to file instead of stdout")
	flag.Parse()

	in := ctdesign.Input{
		Topology:          ctdesign.Topology(*topology),
		Lambda1Nm:         *lambda1,
		Lambda2Nm:         *lambda2,
		GratingLinesPerMM: *lines,
		DiffractionOrder:  *order,
		DvDeg:             *dv,
		SensorLengthMM:    *sensor,
		Magnification:     *mag,
		Theta1Deg:         *theta1,
	}

	res, err := ctdesign.Calculate(in)
	if err != nil {
		log.WithError(err).Fatal("Design calculation failed")
	}

	dst := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.WithError(err).Fatal("Cannot create output file")
		}
		defer f.Close()
		dst = f
	}

	switch *format {
	case "json":
		out := output{Input: in, Computed: res}
		if *withBounds {
			b := constraints.Derive(in, res, constraints.Options{TruncateMargins: *truncate})
			out.Bounds = &b
		}
		if *withLayout {
			p := layout.Build(in, res)
			out.Prescription = &p
		}
		enc := json.NewEncoder(dst)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			log.WithError(err).Fatal("JSON encoding failed")
		}
	case "text":
		printText(dst, in, res, *withLayout, *withBounds, *truncate)
	default:
		log.WithField("format", *format).Fatal("Unknown output format")
	}
}

func printText(dst *os.File, in ctdesign.Input, res ctdesign.Result, withLayout, withBounds, truncate bool) {
	fmt.Fprintf(dst, "Center wavelength:        %.1f nm\n", res.LambdaCNm)
	fmt.Fprintf(dst, "Incidence angle alpha:    %.4f deg\n", res.AlphaDeg)
	fmt.Fprintf(dst, "Diffraction angle beta:   %.4f deg\n", res.BetaDeg)
	fmt.Fprintf(dst, "Entrance arm L_in:        %.3f mm\n", res.LInMM)
	fmt.Fprintf(dst, "Exit arm L_out:           %.3f mm\n", res.LOutMM)
	fmt.Fprintf(dst, "Focusing mirror tilt:     %.4f deg\n", res.Theta2Deg)
	fmt.Fprintf(dst, "Collimating mirror R1:    %.3f mm\n", res.R1MM)
	fmt.Fprintf(dst, "Focusing mirror R2:       %.3f mm\n", res.R2MM)
	fmt.Fprintf(dst, "Coma-free offset d_1:     %.3f mm\n", res.D1MM)
	fmt.Fprintf(dst, "Coma-free offset d_2:     %.3f mm\n", res.D2MM)
	if res.Notes != "" {
		fmt.Fprintf(dst, "Note: %s\n", res.Notes)
	}

	if withBounds {
		b := constraints.Derive(in, res, constraints.Options{TruncateMargins: truncate})
		fmt.Fprintln(dst)
		fmt.Fprintln(dst, "Optimizer bounds:")
		printBand := func(name string, band constraints.Band) {
			fmt.Fprintf(dst, "  %-14s %12.4f .. %12.4f\n", name, band.Min, band.Max)
		}
		printBand("Dv, deg", b.DvDeg)
		printBand("L_in, mm", b.LInMM)
		printBand("d_1, mm", b.D1MM)
		printBand("d_2, mm", b.D2MM)
		printBand("L_out, mm", b.LOutMM)
		printBand("theta1, deg", b.Theta1Deg)
		printBand("theta2, deg", b.Theta2Deg)
		printBand("img tilt, deg", b.ImageTiltDeg)
		printBand("alpha, deg", b.AlphaDeg)
		printBand("beta, deg", b.BetaDeg)
		printBand("1/R1, 1/mm", b.CurvatureR1)
		printBand("1/R2, 1/mm", b.CurvatureR2)
	}

	if withLayout {
		p := layout.Build(in, res)
		fmt.Fprintln(dst)
		fmt.Fprintln(dst, "Surface prescription:")
		for _, s := range p.Surfaces {
			fmt.Fprintf(dst, "  %2d  %-18s %-22s R=%10.3f  t=%10.3f  tiltX=%8.3f\n",
				s.Index, s.Type, s.Comment, s.RadiusMM, s.ThicknessMM, s.TiltXDeg)
		}
	}
}
