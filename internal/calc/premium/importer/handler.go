package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Czerny/internal/calc/ctdesign"
)

type Handler struct{}

type DesignImportResult struct {
	Count   int               `json:"count"`
	Skipped int               `json:"skipped"`
	Results []ctdesign.Result `json:"results"`
}

// Designs evaluates design-request rows from an uploaded workbook. Rows that
// fail to parse or violate a design invariant are skipped, not fatal.
func (h *Handler) Designs(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	out := DesignImportResult{}
	for i := 1; i < len(rows); i++ {
		input, err := parseDesignRow(rows[i])
		if err != nil {
			out.Skipped++
			continue
		}
		res, err := ctdesign.Calculate(input)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// expected columns: topology, lambda_1_nm, lambda_2_nm, lines_per_mm,
// order(optional, default 1), d_v_deg, sensor_mm, magnification, theta_1_deg
func parseDesignRow(row []string) (ctdesign.Input, error) {
	if len(row) < 8 {
		return ctdesign.Input{}, fmt.Errorf("bad row")
	}
	in := ctdesign.Input{Topology: ctdesign.Topology(row[0]), DiffractionOrder: 1}

	var err error
	if in.Lambda1Nm, err = toFloat(row[1]); err != nil {
		return ctdesign.Input{}, err
	}
	if in.Lambda2Nm, err = toFloat(row[2]); err != nil {
		return ctdesign.Input{}, err
	}
	if in.GratingLinesPerMM, err = toFloat(row[3]); err != nil {
		return ctdesign.Input{}, err
	}
	if row[4] != "" {
		order, err := toFloat(row[4])
		if err != nil {
			return ctdesign.Input{}, err
		}
		in.DiffractionOrder = int(order)
	}
	if in.DvDeg, err = toFloat(row[5]); err != nil {
		return ctdesign.Input{}, err
	}
	if in.SensorLengthMM, err = toFloat(row[6]); err != nil {
		return ctdesign.Input{}, err
	}
	if in.Magnification, err = toFloat(row[7]); err != nil {
		return ctdesign.Input{}, err
	}
	if len(row) > 8 && row[8] != "" {
		if in.Theta1Deg, err = toFloat(row[8]); err != nil {
			return ctdesign.Input{}, err
		}
	}
	return in, nil
}

// toFloat rejects cells with trailing garbage; a row with "12.5abc" in a
// numeric column is skipped, not half-parsed.
func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
