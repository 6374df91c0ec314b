package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	log     = logrus.New()
)

// RootCmd is the top level command for pcapdump.
var RootCmd = &cobra.Command{
	Use:   "pcapdump",
	Short: "Inspect legacy pcap and pcapng capture files",
	Long:  "pcapdump reads a capture file and prints its structure: file or section headers, and every packet or block in order.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	RootCmd.AddCommand(pcapCmd, pcapngCmd)
}

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Error("pcapdump failed")
		os.Exit(1)
	}
}
