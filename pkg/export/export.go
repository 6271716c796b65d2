// Package export writes simulation results as CSV, JSON or a plain text table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/kilianp07/gridsim/core/grid"
	"github.com/kilianp07/gridsim/core/summary"
)

// Number is a float64 that encodes non-finite values as JSON null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// Report is the JSON document describing one run.
type Report struct {
	ID            string   `json:"id"`
	Source        string   `json:"source"`
	StorageKWh    Number   `json:"storage_capacity"`
	TimeStepHours Number   `json:"time_step_hours"`
	TimeSteps     []int    `json:"time_steps"`
	Demand        []Number `json:"demand"`
	Generation    []Number `json:"renewable_generation"`
	Storage       []Number `json:"storage_level"`
	Totals        Totals   `json:"totals"`
	Lines         []string `json:"summary"`
}

// Totals mirrors summary.Summary with NaN-safe numbers.
type Totals struct {
	Demand       Number `json:"total_demand_kwh"`
	Generation   Number `json:"total_renewable_generation_kwh"`
	Storage      Number `json:"total_energy_storage_kwh"`
	PeakDemand   Number `json:"peak_demand_kw"`
	CaptureSteps int    `json:"capture_steps"`
}

// NewReport builds the JSON document for a run.
func NewReport(id, source string, r grid.Result, s summary.Summary) Report {
	return Report{
		ID:            id,
		Source:        source,
		StorageKWh:    Number(r.Params.StorageCapacity),
		TimeStepHours: Number(r.Params.TimeStepHours),
		TimeSteps:     r.TimeSteps,
		Demand:        numbers(r.Demand),
		Generation:    numbers(r.Generation),
		Storage:       numbers(r.Storage),
		Totals: Totals{
			Demand:       Number(s.TotalDemand),
			Generation:   Number(s.TotalGeneration),
			Storage:      Number(s.TotalStorage),
			PeakDemand:   Number(s.PeakDemand),
			CaptureSteps: s.CaptureSteps,
		},
		Lines: s.Lines(),
	}
}

func numbers(v []float64) []Number {
	out := make([]Number, len(v))
	for i, f := range v {
		out[i] = Number(f)
	}
	return out
}

// WriteJSON writes the report to w in JSON format.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteCSV writes one row per time step.
func WriteCSV(w io.Writer, r grid.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time_step", "demand_kw", "generation_kw", "storage_kw"}); err != nil {
		return err
	}
	for i, step := range r.TimeSteps {
		rec := []string{
			strconv.Itoa(step),
			strconv.FormatFloat(r.Demand[i], 'f', -1, 64),
			strconv.FormatFloat(r.Generation[i], 'f', -1, 64),
			strconv.FormatFloat(r.Storage[i], 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes an aligned table followed by the summary lines.
func WriteText(w io.Writer, r grid.Result, s summary.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, "Step\tDemand\tSolar Energy\tEnergy Storage\t"); err != nil {
		return err
	}
	for i, step := range r.TimeSteps {
		if _, err := fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t\n", step, r.Demand[i], r.Generation[i], r.Storage[i]); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, line := range s.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
