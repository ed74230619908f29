// Package export renders results as CSV or JSON on a caller-supplied writer.
// Nothing is written to disk by this package; results are not persisted.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/alidh/modelab/internal/econ"
	"github.com/alidh/modelab/internal/sim"
)

type TrajectoryData struct {
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Clamped    []bool             `json:"clamped"`
	Metrics    map[string]float64 `json:"metrics"`
}

func TrajectoryJSON(w io.Writer, model, integrator string, dt, duration float64, result *sim.Result) error {
	states := make([][]float64, len(result.States))
	for i, s := range result.States {
		states[i] = s
	}

	data := TrajectoryData{
		Model:      model,
		Integrator: integrator,
		Dt:         dt,
		Duration:   duration,
		Steps:      result.StepsTaken,
		Times:      result.Times,
		States:     states,
		Clamped:    result.Clamped,
		Metrics:    result.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// TrajectoryCSV writes one row per sample: time, each state component under
// its label, and the clamp flag.
func TrajectoryCSV(w io.Writer, labels []string, result *sim.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time"}
	if len(result.States) > 0 {
		for i := range result.States[0] {
			if i < len(labels) {
				header = append(header, labels[i])
			} else {
				header = append(header, fmt.Sprintf("x%d", i))
			}
		}
	}
	header = append(header, "clamped")

	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		row = append(row, strconv.FormatBool(result.Clamped[i]))

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}

func ProductionCSV(w io.Writer, prods []econ.Production) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"sector", "production"}); err != nil {
		return err
	}
	for _, p := range prods {
		if err := cw.Write([]string{p.Sector, strconv.FormatFloat(p.Output, 'f', 6, 64)}); err != nil {
			return err
		}
	}

	return cw.Error()
}

func ProductionJSON(w io.Writer, prods []econ.Production) error {
	type entry struct {
		Sector     string  `json:"sector"`
		Production float64 `json:"production"`
	}
	out := make([]entry, len(prods))
	for i, p := range prods {
		out[i] = entry{Sector: p.Sector, Production: p.Output}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
