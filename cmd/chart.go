package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yardtools/yardcap/config"
	"github.com/yardtools/yardcap/core/model"
	"github.com/yardtools/yardcap/infra/chart"
	"github.com/yardtools/yardcap/infra/ingest"
	"github.com/yardtools/yardcap/infra/logger"
)

var chartOut string

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the 24-hour yard wheel SVG",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "", "output file (default <output dir>/wheel.svg)")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New("chart")
	departures, err := ingest.ReadDepartures(cfg.Input.Departures, log)
	if err != nil {
		return err
	}
	var inbound []model.InboundRecord
	if cfg.Input.Inbound != "" {
		inbound, err = ingest.ReadInbound(cfg.Input.Inbound, log)
		if err != nil {
			return err
		}
	}
	out := chartOut
	if out == "" {
		out = filepath.Join(cfg.Output.Dir, "wheel.svg")
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	w := chart.Wheel{Title: cfg.Input.Label}
	if err := w.WriteFile(out, inbound, departures); err != nil {
		return err
	}
	log.Infof("wrote %s", out)
	return nil
}
