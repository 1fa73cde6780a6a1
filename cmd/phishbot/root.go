package main

import (
	"github.com/gavinalvarezz/PhishBotAgent/internal/di"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configFile  string
	wordListDir string
	verbose     bool
	jsonLog     bool
}

func (g *globalFlags) cliFlags(cmd *cobra.Command, jsonOutput bool) *di.CLIFlags {
	return &di.CLIFlags{
		ConfigFile:  g.configFile,
		WordListDir: g.wordListDir,
		Verbose:     g.verbose,
		JSONLog:     g.jsonLog,
		JSONOutput:  jsonOutput,
		Out:         cmd.OutOrStdout(),
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "phishbot",
		Short: "PhishBot - heuristic phishing risk scanner",
		Long: `PhishBot scores an email for phishing risk from 0 to 100 and tells you what to do about it.

Signals: known danger and safe phrases, the sender's domain reputation,
lookalike domains that imitate trusted senders, and embedded password fields.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "", "Path to config file")
	pf.StringVar(&g.wordListDir, "wordlists", "", "Directory holding danger_words.txt and safe_words.txt (default: built-in lists)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.BoolVar(&g.jsonLog, "json-log", false, "Output logs in JSON format")

	rootCmd.AddCommand(newScanCmd(g))
	rootCmd.AddCommand(newAdviseCmd())
	rootCmd.AddCommand(newHashCmd(g))

	return rootCmd
}
