package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/persistorai/dotwalk/internal/config"
)

// Build-time variables set via ldflags.
var (
	commit    = ""
	buildDate = ""
)

var (
	flagURL     string
	flagSource  string
	flagProfile string
	flagVerbose bool
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("dotwalk version %s (commit: %s, built: %s)", config.Version, commit, buildDate)
	}
	return fmt.Sprintf("dotwalk version %s", config.Version)
}

// cliLogger logs to stderr so stdout stays clean for DOT and JSON output.
func cliLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "dotwalk",
		Short:   "dotwalk explores model lineage graphs written in DOT",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
		},
		SilenceUsage: true,
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&flagURL, "url", "", "dotwalk server URL; runs locally when empty (env: DOTWALK_URL)")
	root.PersistentFlags().StringVarP(&flagSource, "source", "s", "", "DOT file path or http(s) URL (env: DOTWALK_SOURCE)")
	root.PersistentFlags().StringVar(&flagProfile, "profile", "", "config profile (env: DOTWALK_PROFILE)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging to stderr")

	serveCmd := newServeCmd()
	serveCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // server reads env, not CLI config

	root.AddCommand(newTraverseCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newCypherCmd())
	root.AddCommand(serveCmd)
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
