package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	logger := log.New()

	var rootCmd = &cobra.Command{
		Use:   "mip",
		Short: "Exact mixed integer linear programming",
		Long: `mip solves mixed integer linear problems with exact rational arithmetic.

Problems are read from YAML documents or from MPS files.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logger.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.AddCommand(newSolveCmd(logger), newCheckCmd(logger), newConvertCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	if err := rootCmd.PersistentFlags().MarkHidden("debug"); err != nil {
		log.Panic(err.Error())
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
