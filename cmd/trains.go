package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yardtools/yardcap/config"
	"github.com/yardtools/yardcap/infra/ingest"
	"github.com/yardtools/yardcap/infra/logger"
)

var trainsCmd = &cobra.Command{
	Use:   "trains",
	Short: "Departure table commands",
}

var trainsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the trains in the configured departure table",
	RunE:  runTrainsLs,
}

func init() {
	trainsCmd.AddCommand(trainsLsCmd)
	rootCmd.AddCommand(trainsCmd)
}

func runTrainsLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	departures, err := ingest.ReadDepartures(cfg.Input.Departures, logger.New("trains-ls"))
	if err != nil {
		return err
	}
	for _, d := range departures {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
			d.TrainID, d.Departure, strings.Join(d.Blocks, ", "))
	}
	return nil
}
