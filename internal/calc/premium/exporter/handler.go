package exporter

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"Czerny/internal/calc/constraints"
	"Czerny/internal/calc/ctdesign"
	"Czerny/internal/calc/layout"
)

type Handler struct{}

type request struct {
	Input   ctdesign.Input      `json:"input"`
	Options constraints.Options `json:"options"`
}

// Design writes one computed design to a downloadable workbook: parameters,
// surface prescription and merit bounds on separate sheets.
func (h *Handler) Design(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := ctdesign.Calculate(req.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pr := layout.Build(req.Input, res)
	bounds := constraints.Derive(req.Input, res, req.Options)

	f := excelize.NewFile()
	defer f.Close()

	writeParams(f, req.Input, res)
	writeSurfaces(f, pr)
	writeBounds(f, bounds)
	f.DeleteSheet("Sheet1")

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"ct_design.xlsx\"")
	if err := f.Write(w); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
}

func writeParams(f *excelize.File, in ctdesign.Input, res ctdesign.Result) {
	f.NewSheet("Parameters")
	rows := [][]any{
		{"quantity", "value", "unit"},
		{"topology", string(in.Topology), ""},
		{"lambda_1", in.Lambda1Nm, "nm"},
		{"lambda_2", in.Lambda2Nm, "nm"},
		{"lambda_c", res.LambdaCNm, "nm"},
		{"grating density", in.GratingLinesPerMM, "lines/mm"},
		{"diffraction order", in.DiffractionOrder, ""},
		{"D_v", in.DvDeg, "deg"},
		{"sensor length", in.SensorLengthMM, "mm"},
		{"magnification", in.Magnification, ""},
		{"alpha", res.AlphaDeg, "deg"},
		{"beta", res.BetaDeg, "deg"},
		{"L_out", res.LOutMM, "mm"},
		{"L_in", res.LInMM, "mm"},
		{"theta_1", in.Theta1Deg, "deg"},
		{"theta_2", res.Theta2Deg, "deg"},
		{"R_1", res.R1MM, "mm"},
		{"R_2", res.R2MM, "mm"},
		{"d_1", res.D1MM, "mm"},
		{"d_2", res.D2MM, "mm"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		f.SetSheetRow("Parameters", cell, &row)
	}
}

func writeSurfaces(f *excelize.File, pr layout.Prescription) {
	f.NewSheet("Surfaces")
	header := []any{"index", "type", "comment", "radius_mm", "thickness_mm", "tilt_x_deg", "material", "lines_per_um", "order", "pickup_from", "stop"}
	f.SetSheetRow("Surfaces", "A1", &header)
	for i, s := range pr.Surfaces {
		row := []any{s.Index, string(s.Type), s.Comment, s.RadiusMM, s.ThicknessMM, s.TiltXDeg, s.Material, s.LinesPerUm, s.Order, s.PickupFrom, s.Stop}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow("Surfaces", cell, &row)
	}
}

func writeBounds(f *excelize.File, b constraints.Bounds) {
	f.NewSheet("Constraints")
	header := []any{"quantity", "min", "max"}
	f.SetSheetRow("Constraints", "A1", &header)
	rows := []struct {
		name string
		band constraints.Band
	}{
		{"d_v_deg", b.DvDeg},
		{"l_in_mm", b.LInMM},
		{"d_1_mm", b.D1MM},
		{"d_2_mm", b.D2MM},
		{"l_out_mm", b.LOutMM},
		{"theta_1_deg", b.Theta1Deg},
		{"theta_2_deg", b.Theta2Deg},
		{"image_tilt_deg", b.ImageTiltDeg},
		{"alpha_deg", b.AlphaDeg},
		{"beta_deg", b.BetaDeg},
		{"curvature_r_1", b.CurvatureR1},
		{"curvature_r_2", b.CurvatureR2},
	}
	for i, row := range rows {
		out := []any{row.name, row.band.Min, row.band.Max}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow("Constraints", cell, &out)
	}
	target := []any{fmt.Sprintf("sensor target (weight %g)", b.SensorWeight), b.SensorTargetMM, b.SensorTargetMM}
	cell, _ := excelize.CoordinatesToCellName(1, len(rows)+2)
	f.SetSheetRow("Constraints", cell, &target)
}
