package main

import (
	"errors"
	"fmt"

	"github.com/gavinalvarezz/PhishBotAgent/internal/config"
	"github.com/gavinalvarezz/PhishBotAgent/internal/di"
	"github.com/gavinalvarezz/PhishBotAgent/internal/factory"
	"github.com/gavinalvarezz/PhishBotAgent/internal/wordlist"
	"github.com/spf13/cobra"
)

func newHashCmd(g *globalFlags) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the SHA-256 fingerprints of the word lists",
		Long: `Print the SHA-256 fingerprint of each word list so it can be pinned in the
configuration (wordlists.danger.sha256, wordlists.safe.sha256).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := di.BuildCLIContainer(g.cliFlags(cmd, false))
			if err != nil {
				return fmt.Errorf("failed to build dependency container: %w", err)
			}

			return container.Invoke(func(cfg *config.Config, f *factory.ScorerFactory) error {
				store := f.CreateStore()
				wl := cfg.GetWordLists()
				out := cmd.OutOrStdout()

				mismatch := false
				for _, list := range []config.WordListConfig{wl.Danger, wl.Safe} {
					digest, err := store.Fingerprint(list.File)
					if err != nil {
						fmt.Fprintf(out, "%s not found.\n", list.File)
						mismatch = true
						continue
					}
					fmt.Fprintf(out, "%s SHA-256: %s\n", list.File, digest)
					if check && !wordlist.DigestsEqual(digest, list.SHA256) {
						fmt.Fprintf(out, "%s does not match the pinned digest %s\n", list.File, list.SHA256)
						mismatch = true
					}
				}

				if check && mismatch {
					return errors.New("word list check failed")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Fail if a list is missing or differs from its pinned digest")

	return cmd
}
