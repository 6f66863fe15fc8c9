package batch

import (
	"fmt"

	"Czerny/internal/calc/ctdesign"
)

type DesignBatchInput struct {
	Items []ctdesign.Input `json:"items"`
}

type DesignBatchResult struct {
	Results []ctdesign.Result `json:"results"`
}

func CalculateDesigns(in DesignBatchInput) (DesignBatchResult, error) {
	if len(in.Items) == 0 {
		return DesignBatchResult{}, fmt.Errorf("no items")
	}
	out := DesignBatchResult{Results: make([]ctdesign.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := ctdesign.Calculate(item)
		if err != nil {
			return DesignBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
