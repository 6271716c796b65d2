package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/gridsim/app"
	"github.com/kilianp07/gridsim/pkg/chart"
	"github.com/kilianp07/gridsim/pkg/export"
)

type simulateFlags struct {
	capacity  string
	timeStep  string
	renewable string
	chartPath string
	format    string
}

func newSimulateCmd(load configLoader) *cobra.Command {
	var f simulateFlags
	c := &cobra.Command{
		Use:   "simulate",
		Short: "Run one simulation and print the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, load, f)
		},
	}
	c.Flags().StringVar(&f.capacity, "capacity", "", "storage capacity per step in kWh (default from config, 50)")
	c.Flags().StringVar(&f.timeStep, "time-step", "", "time step length in hours (default from config, 1)")
	c.Flags().StringVarP(&f.renewable, "renewable", "r", "", "CSV file with the renewable generation series")
	c.Flags().StringVar(&f.chartPath, "chart", "", "write a chart to this file (.png, .svg, .pdf)")
	c.Flags().StringVarP(&f.format, "format", "o", "table", "output format: table, csv or json")
	return c
}

func runSimulate(cmd *cobra.Command, load configLoader, f simulateFlags) error {
	switch f.format {
	case "table", "csv", "json":
	default:
		return fmt.Errorf("unknown format %q", f.format)
	}
	cfg, err := load()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}

	req := app.Request{
		StorageCapacity: cfg.Simulation.StorageCapacity,
		TimeStep:        cfg.Simulation.TimeStep,
	}
	if cmd.Flags().Changed("capacity") {
		req.StorageCapacity = f.capacity
	}
	if cmd.Flags().Changed("time-step") {
		req.TimeStep = f.timeStep
	}
	req.RenewableFile = f.renewable

	rep, err := svc.Simulate(req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch f.format {
	case "csv":
		err = export.WriteCSV(out, rep.Result)
	case "json":
		err = export.WriteJSON(out, export.NewReport(rep.ID, rep.Source.String(), rep.Result, rep.Summary))
	default:
		err = export.WriteText(out, rep.Result, rep.Summary)
	}
	if err != nil {
		return err
	}
	if f.chartPath != "" {
		return writeChart(f.chartPath, rep)
	}
	return nil
}

func writeChart(path string, rep *app.Report) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "png"
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := chart.Render(file, rep.Result, format); err != nil {
		_ = file.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return file.Close()
}
