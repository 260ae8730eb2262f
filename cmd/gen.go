package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yardtools/yardcap/infra/logger"
	"github.com/yardtools/yardcap/infra/synth"
)

var genCfg synth.Config
var genDir string

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a synthetic departure table and yard plan",
	RunE:  runGen,
}

func init() {
	genCmd.Flags().StringVarP(&genDir, "dir", "d", "demo-data", "dataset directory")
	genCmd.Flags().Int64Var(&genCfg.Seed, "seed", 1, "random seed")
	genCmd.Flags().IntVar(&genCfg.Trains, "trains", 8, "number of outbound trains")
	genCmd.Flags().IntVar(&genCfg.Blocks, "blocks", 6, "number of block codes")
	genCmd.Flags().IntVar(&genCfg.Inbound, "inbound", 4, "number of inbound trains")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	return synth.WriteDataset(genDir, genCfg, logger.New("gen"))
}
