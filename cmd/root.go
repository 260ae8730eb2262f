package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yardtools/yardcap/app"
	"github.com/yardtools/yardcap/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "yardcap",
	Short: "Yard staging capacity planner",
	Long: "yardcap computes, per outbound train, a 24-hour car-hours capacity curve\n" +
		"from a departure table and a yard plan, and reports each train's tightest\n" +
		"staging hour.",
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	if _, err := svc.Run(ctx); err != nil {
		return err
	}
	return nil
}
