package store

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the JSON export shape for one synthesized plan.
type ExportData struct {
	Scenario     string      `json:"scenario"`
	Start        int         `json:"start"`
	End          int         `json:"end"`
	Horizon      int         `json:"horizon"`
	Piece        int         `json:"piece"`
	Cost         float64     `json:"cost"`
	Conservative bool        `json:"conservative"`
	ClosedLoop   bool        `json:"closed_loop"`
	States       [][]float64 `json:"states"`
	Inputs       [][]float64 `json:"inputs"`
}

func exportData(meta *RunMetadata, states, inputs [][]float64) ExportData {
	return ExportData{
		Scenario:     meta.Scenario,
		Start:        meta.Start,
		End:          meta.End,
		Horizon:      meta.Horizon,
		Piece:        meta.Piece,
		Cost:         meta.Cost,
		Conservative: meta.Conservative,
		ClosedLoop:   meta.ClosedLoop,
		States:       states,
		Inputs:       inputs,
	}
}

func ExportJSON(path string, meta *RunMetadata, states, inputs [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, meta, states, inputs)
}

func ExportJSONStdout(meta *RunMetadata, states, inputs [][]float64) error {
	return writeExport(os.Stdout, meta, states, inputs)
}

func writeExport(w io.Writer, meta *RunMetadata, states, inputs [][]float64) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, states, inputs))
}
