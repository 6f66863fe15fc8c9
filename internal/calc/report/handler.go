package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	"Czerny/internal/calc/constraints"
	"Czerny/internal/calc/ctdesign"
)

type Input struct {
	Project string         `json:"project"`
	Author  string         `json:"author"`
	Title   string         `json:"title"`
	Notes   string         `json:"notes"`
	Design  ctdesign.Input `json:"design"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Czerny-Turner Design Report"
	}

	res, err := ctdesign.Calculate(input.Design)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	bounds := constraints.Derive(input.Design, res, constraints.Options{})

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Inputs")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	writeKV(pdf, "Topology", string(input.Design.Topology))
	writeKV(pdf, "Band", fmt.Sprintf("%g - %g nm", input.Design.Lambda1Nm, input.Design.Lambda2Nm))
	writeKV(pdf, "Grating", fmt.Sprintf("%g lines/mm, order %d", input.Design.GratingLinesPerMM, input.Design.DiffractionOrder))
	writeKV(pdf, "Arm angle D_v", fmt.Sprintf("%g deg", input.Design.DvDeg))
	writeKV(pdf, "Sensor length", fmt.Sprintf("%g mm", input.Design.SensorLengthMM))
	writeKV(pdf, "Magnification", fmt.Sprintf("%g", input.Design.Magnification))
	writeKV(pdf, "Collimator tilt theta_1", fmt.Sprintf("%g deg", input.Design.Theta1Deg))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Computed layout")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	writeKV(pdf, "Center wavelength", fmt.Sprintf("%.3f nm", res.LambdaCNm))
	writeKV(pdf, "Incidence alpha", fmt.Sprintf("%.4f deg", res.AlphaDeg))
	writeKV(pdf, "Diffraction beta", fmt.Sprintf("%.4f deg", res.BetaDeg))
	writeKV(pdf, "Exit arm L_out", fmt.Sprintf("%.4f mm", res.LOutMM))
	writeKV(pdf, "Entrance arm L_in", fmt.Sprintf("%.4f mm", res.LInMM))
	writeKV(pdf, "Focuser tilt theta_2", fmt.Sprintf("%.4f deg", res.Theta2Deg))
	writeKV(pdf, "Collimator radius R_1", fmt.Sprintf("%.4f mm", res.R1MM))
	writeKV(pdf, "Focuser radius R_2", fmt.Sprintf("%.4f mm", res.R2MM))
	writeKV(pdf, "Offset d_1", fmt.Sprintf("%.4f mm", res.D1MM))
	writeKV(pdf, "Offset d_2", fmt.Sprintf("%.4f mm", res.D2MM))
	if res.Notes != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, res.Notes, "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Optimizer bounds")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	writeKV(pdf, "Spectral length target", fmt.Sprintf("%g mm (weight %g)", bounds.SensorTargetMM, bounds.SensorWeight))
	writeBand(pdf, "Arm angle D_v", bounds.DvDeg, "deg")
	writeBand(pdf, "L_in", bounds.LInMM, "mm")
	writeBand(pdf, "d_1", bounds.D1MM, "mm")
	writeBand(pdf, "d_2", bounds.D2MM, "mm")
	writeBand(pdf, "L_out", bounds.LOutMM, "mm")
	writeBand(pdf, "theta_1", bounds.Theta1Deg, "deg")
	writeBand(pdf, "theta_2", bounds.Theta2Deg, "deg")
	writeBand(pdf, "image tilt", bounds.ImageTiltDeg, "deg")
	writeBand(pdf, "alpha", bounds.AlphaDeg, "deg")
	writeBand(pdf, "beta", bounds.BetaDeg, "deg")
	writeBand(pdf, "curvature 1/R_1", bounds.CurvatureR1, "1/mm")
	writeBand(pdf, "curvature 1/R_2", bounds.CurvatureR2, "1/mm")

	if input.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"ct_design_report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func writeKV(pdf *gofpdf.Fpdf, key, value string) {
	pdf.Cell(70, 5, key)
	pdf.Cell(0, 5, value)
	pdf.Ln(5)
}

func writeBand(pdf *gofpdf.Fpdf, key string, b constraints.Band, unit string) {
	writeKV(pdf, key, fmt.Sprintf("%.6g to %.6g %s", b.Min, b.Max, unit))
}
